package repayment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	// ListByLoanID returns repayments newest payment date first.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Repayment, error)
	// SumByLoanID is the total repaid on a loan, zero when nothing was paid.
	SumByLoanID(ctx context.Context, loanID uint64) (decimal.Decimal, error)
}

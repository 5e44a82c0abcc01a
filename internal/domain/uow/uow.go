package uow

import (
	"context"

	"microfinance-backoffice/internal/domain/application"
	"microfinance-backoffice/internal/domain/client"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/domain/repayment"
)

// Repos are bound to one transaction; writes through them commit or roll
// back together.
type Repos struct {
	Products     product.Repository
	Clients      client.Repository
	Applications application.Repository
	Loans        loan.Repository
	Repayments   repayment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
	// lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}

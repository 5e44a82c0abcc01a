package repayment

import (
	"time"

	"microfinance-backoffice/internal/domain/loan"
	domain "microfinance-backoffice/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

type PostInput struct {
	LoanID      string
	Amount      decimal.Decimal
	PaymentDate time.Time // zero means today
	Method      string    // empty means CASH
}

type RepaymentDTO struct {
	RepaymentID  string    `json:"repayment_id"`
	LoanID       string    `json:"loan_id"`
	Amount       string    `json:"amount"`
	PaymentDate  string    `json:"payment_date"` // YYYY-MM-DD
	Method       string    `json:"method"`
	BalanceAfter string    `json:"balance_after,omitempty"`
	LoanStatus   string    `json:"loan_status,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// StatementDTO reconciles a loan: TotalRepaid + Balance should equal
// TotalPayable for any loan that has not been defaulted or overpaid.
type StatementDTO struct {
	LoanID         string `json:"loan_id"`
	Status         string `json:"status"`
	Principal      string `json:"principal"`
	InterestAmount string `json:"interest_amount"`
	TotalPayable   string `json:"total_payable"`
	TotalRepaid    string `json:"total_repaid"`
	Balance        string `json:"balance"`
	Repayments     int    `json:"repayments"`
	DueDate        string `json:"due_date"`
	Reconciled     bool   `json:"reconciled"`
}

func toDTO(r *domain.Repayment, loanID string) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID: r.RepaymentID,
		LoanID:      loanID,
		Amount:      r.Amount.StringFixed(2),
		PaymentDate: r.PaymentDate.Format(time.DateOnly),
		Method:      string(r.Method),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}

func toStatement(l *loan.Loan, repaid decimal.Decimal, count int) *StatementDTO {
	return &StatementDTO{
		LoanID:         l.LoanID,
		Status:         string(l.Status),
		Principal:      l.DisbursedAmount.StringFixed(2),
		InterestAmount: l.InterestAmount().StringFixed(2),
		TotalPayable:   l.TotalPayable.StringFixed(2),
		TotalRepaid:    repaid.StringFixed(2),
		Balance:        l.Balance.StringFixed(2),
		Repayments:     count,
		DueDate:        l.DueDate.Format(time.DateOnly),
		Reconciled:     repaid.Add(l.Balance).Equal(l.TotalPayable),
	}
}

package disbursement

import (
	"time"

	"microfinance-backoffice/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type DisburseInput struct {
	ApplicationID    string
	DisbursedAmount  decimal.Decimal
	DisbursementDate time.Time // zero means today
}

type LoanDTO struct {
	LoanID           string    `json:"loan_id"`
	ApplicationID    string    `json:"application_id"`
	DisbursedAmount  string    `json:"disbursed_amount"`
	InterestRate     string    `json:"interest_rate"`
	DurationMonths   int       `json:"duration_months"`
	InterestAmount   string    `json:"interest_amount"`
	TotalPayable     string    `json:"total_payable"`
	Balance          string    `json:"balance"`
	Status           string    `json:"status"`
	DisbursementDate string    `json:"disbursement_date"` // YYYY-MM-DD
	DueDate          string    `json:"due_date"`          // YYYY-MM-DD
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToDTO(l *loan.Loan, applicationID string) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		ApplicationID:    applicationID,
		DisbursedAmount:  l.DisbursedAmount.StringFixed(2),
		InterestRate:     l.InterestRate.StringFixed(2),
		DurationMonths:   l.DurationMonths,
		InterestAmount:   l.InterestAmount().StringFixed(2),
		TotalPayable:     l.TotalPayable.StringFixed(2),
		Balance:          l.Balance.StringFixed(2),
		Status:           string(l.Status),
		DisbursementDate: l.DisbursementDate.Format(time.DateOnly),
		DueDate:          l.DueDate.Format(time.DateOnly),
		CreatedBy:        l.CreatedBy,
		CreatedAt:        l.CreatedAt,
	}
}

package loan

import (
	"time"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = apperr.NotFound("loan not found")
	ErrAlreadyDisbursed  = apperr.Conflict("a loan already exists for this application")
	ErrNotActive         = apperr.Consistency("loan is not active")
	ErrInvalidTransition = apperr.Consistency("invalid loan status transition")
	ErrStaleWrite        = apperr.Conflict("loan was modified concurrently")
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusDefaulted Status = "DEFAULTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusDefaulted:
		return true
	}
	return false
}

// CanTransitionTo: ACTIVE → CLOSED | DEFAULTED, DEFAULTED → CLOSED.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusActive:
		return next == StatusClosed || next == StatusDefaulted
	case StatusDefaulted:
		return next == StatusClosed
	case StatusClosed:
		return false
	default:
		return false
	}
}

// Loan is the disbursed side of an application. InterestRate and
// DurationMonths are copied from the product at disbursement.
type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string          `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	ApplicationID    uint64          `gorm:"column:application_id;not null;uniqueIndex:ux_loans_application_id" json:"-"`
	DisbursedAmount  decimal.Decimal `gorm:"column:disbursed_amount;type:decimal(12,2);not null" json:"disbursed_amount"`
	InterestRate     decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths   int             `gorm:"column:duration_months;not null" json:"duration_months"`
	TotalPayable     decimal.Decimal `gorm:"column:total_payable;type:decimal(14,2);not null" json:"total_payable"`
	DisbursementDate time.Time       `gorm:"column:disbursement_date;type:date;not null" json:"disbursement_date"`
	DueDate          time.Time       `gorm:"column:due_date;type:date;not null;index:idx_loans_status_due,priority:2" json:"due_date"`
	Balance          decimal.Decimal `gorm:"column:balance;type:decimal(14,2);not null" json:"balance"`
	Status           Status          `gorm:"column:status;type:enum('ACTIVE','CLOSED','DEFAULTED');default:'ACTIVE';index:idx_loans_status_due,priority:1" json:"status"`
	Version          uint64          `gorm:"column:version;not null" json:"-"`
	CreatedBy        string          `gorm:"column:created_by;size:32" json:"created_by"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// TotalAmount is principal plus flat interest on the loan's own snapshot.
func (l *Loan) TotalAmount() decimal.Decimal {
	return TotalPayable(l.DisbursedAmount, l.InterestRate, l.DurationMonths)
}

func (l *Loan) InterestAmount() decimal.Decimal {
	return Interest(l.DisbursedAmount, l.InterestRate, l.DurationMonths)
}

func (l *Loan) transitionTo(next Status) error {
	if !l.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	l.Status = next
	return nil
}

// ValidateRepaymentAmount checks the amount on its own, before any loan is read.
func ValidateRepaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount", "must be greater than 0")
	}
	if !amount.Equal(amount.Round(2)) {
		return apperr.Validation("amount", "must have at most 2 decimal places")
	}
	return nil
}

// ApplyRepayment deducts amount from the balance and closes the loan once it
// is fully repaid. On error the loan is left untouched.
func (l *Loan) ApplyRepayment(amount decimal.Decimal) error {
	if err := ValidateRepaymentAmount(amount); err != nil {
		return err
	}
	if l.Status != StatusActive {
		return ErrNotActive
	}
	if amount.GreaterThan(l.Balance) {
		return apperr.Validation("amount", "payment amount cannot exceed outstanding balance of %s", l.Balance.StringFixed(2))
	}
	l.Balance = l.Balance.Sub(amount)
	if !l.Balance.IsPositive() {
		l.Balance = decimal.Zero
		return l.transitionTo(StatusClosed)
	}
	return nil
}

// IsOverdue reports whether the loan still owes money after cutoff.
func (l *Loan) IsOverdue(cutoff time.Time) bool {
	return l.Status == StatusActive && l.Balance.IsPositive() && DateOf(l.DueDate).Before(DateOf(cutoff))
}

func (l *Loan) MarkDefaulted() error { return l.transitionTo(StatusDefaulted) }

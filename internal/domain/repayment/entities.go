package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash   Method = "CASH"
	MethodMobile Method = "MOBILE"
	MethodBank   Method = "BANK"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodMobile, MethodBank:
		return true
	}
	return false
}

// Repayment is an append-only ledger line against a loan.
type Repayment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string          `gorm:"column:repayment_id;size:32;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID      uint64          `gorm:"column:loan_id;not null;index:idx_repayments_loan" json:"-"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"column:payment_date;type:date;not null" json:"payment_date"`
	Method      Method          `gorm:"column:method;type:enum('CASH','MOBILE','BANK');default:'CASH'" json:"method"`
	CreatedBy   string          `gorm:"column:created_by;size:32" json:"created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }

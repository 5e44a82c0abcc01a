package product

import (
	"time"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

var ErrNotFound = apperr.NotFound("loan product not found")

type Frequency string

const (
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyYearly    Frequency = "YEARLY"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Product holds the static terms a loan is written against. Loans copy the
// rate and duration at disbursement, so edits here never reach existing loans.
type Product struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	ProductID          string          `gorm:"column:product_id;size:32;uniqueIndex:ux_products_product_id" json:"product_id"`
	Name               string          `gorm:"column:name;size:100;not null" json:"name"`
	Description        string          `gorm:"column:description;type:text" json:"description"`
	InterestRate       decimal.Decimal `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	DurationMonths     int             `gorm:"column:duration_months;not null" json:"duration_months"`
	RepaymentFrequency Frequency       `gorm:"column:repayment_frequency;type:enum('WEEKLY','MONTHLY','QUARTERLY','YEARLY');default:'MONTHLY'" json:"repayment_frequency"`
	MaxAmount          decimal.Decimal `gorm:"column:max_amount;type:decimal(12,2);not null" json:"max_amount"`
	CreatedBy          string          `gorm:"column:created_by;size:32" json:"created_by"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "loan_products" }

var hundred = decimal.NewFromInt(100)

// Validate checks the catalog terms; the first failing field is reported.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return apperr.Validation("name", "is required")
	case p.InterestRate.IsNegative() || p.InterestRate.GreaterThan(hundred):
		return apperr.Validation("interest_rate", "must be between 0 and 100")
	case !p.InterestRate.Equal(p.InterestRate.Round(2)):
		return apperr.Validation("interest_rate", "must have at most 2 decimal places")
	case p.DurationMonths < 1:
		return apperr.Validation("duration_months", "must be at least 1")
	case !p.RepaymentFrequency.Valid():
		return apperr.Validation("repayment_frequency", "must be one of WEEKLY, MONTHLY, QUARTERLY, YEARLY")
	case !p.MaxAmount.IsPositive():
		return apperr.Validation("max_amount", "must be greater than 0")
	case !p.MaxAmount.Equal(p.MaxAmount.Round(2)):
		return apperr.Validation("max_amount", "must have at most 2 decimal places")
	}
	return nil
}

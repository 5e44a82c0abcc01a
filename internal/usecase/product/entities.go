package product

import (
	"time"

	domain "microfinance-backoffice/internal/domain/product"

	"github.com/shopspring/decimal"
)

// ProductInput carries every editable term; Update replaces them all.
type ProductInput struct {
	Name               string
	Description        string
	InterestRate       decimal.Decimal
	DurationMonths     int
	RepaymentFrequency string
	MaxAmount          decimal.Decimal
}

type ProductDTO struct {
	ProductID          string    `json:"product_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	InterestRate       string    `json:"interest_rate"`
	DurationMonths     int       `json:"duration_months"`
	RepaymentFrequency string    `json:"repayment_frequency"`
	MaxAmount          string    `json:"max_amount"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:          p.ProductID,
		Name:               p.Name,
		Description:        p.Description,
		InterestRate:       p.InterestRate.StringFixed(2),
		DurationMonths:     p.DurationMonths,
		RepaymentFrequency: string(p.RepaymentFrequency),
		MaxAmount:          p.MaxAmount.StringFixed(2),
		CreatedBy:          p.CreatedBy,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

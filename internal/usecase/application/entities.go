package application

import (
	"time"

	domain "microfinance-backoffice/internal/domain/application"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	ClientID        string // public 32-hex id
	ProductID       string // public 32-hex id
	AmountRequested decimal.Decimal
	Remarks         string
}

type UpdateInput struct {
	ApplicationID   string
	ProductID       string // optional; empty keeps the current product
	AmountRequested decimal.Decimal
	Remarks         string
}

type DecisionInput struct {
	ApplicationID string
	Remarks       string
}

type ApplicationDTO struct {
	ApplicationID   string     `json:"application_id"`
	ClientID        string     `json:"client_id"`
	ProductID       string     `json:"product_id"`
	AmountRequested string     `json:"amount_requested"`
	Status          string     `json:"status"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	Remarks         string     `json:"remarks,omitempty"`
	ApplicationDate string     `json:"application_date"` // YYYY-MM-DD
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toDTO(a *domain.Application, clientID, productID string) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:   a.ApplicationID,
		ClientID:        clientID,
		ProductID:       productID,
		AmountRequested: a.AmountRequested.StringFixed(2),
		Status:          string(a.Status),
		ApprovedBy:      a.ApprovedBy,
		Remarks:         a.Remarks,
		ApplicationDate: a.ApplicationDate.Format(time.DateOnly),
		DecidedAt:       a.DecidedAt,
		CreatedBy:       a.CreatedBy,
		CreatedAt:       a.CreatedAt,
	}
}

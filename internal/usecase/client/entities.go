package client

import (
	"time"

	domain "microfinance-backoffice/internal/domain/client"
)

type RegisterInput struct {
	FirstName   string
	LastName    string
	ClientType  string
	NationalID  string
	PhoneNumber string
}

type ClientDTO struct {
	ClientID    string    `json:"client_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	ClientType  string    `json:"client_type"`
	NationalID  string    `json:"national_id"`
	PhoneNumber string    `json:"phone_number"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDTO(c *domain.Client) *ClientDTO {
	return &ClientDTO{
		ClientID:    c.ClientID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		ClientType:  string(c.ClientType),
		NationalID:  c.NationalID,
		PhoneNumber: c.PhoneNumber,
		Status:      string(c.Status),
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

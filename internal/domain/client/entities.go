package client

import (
	"time"

	"microfinance-backoffice/internal/domain/apperr"
)

var (
	ErrNotFound = apperr.NotFound("client not found")
	ErrInactive = apperr.Validation("client_id", "client is not active")
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusInactive }

type Type string

const (
	TypeIndividual Type = "INDIVIDUAL"
	TypeGroup      Type = "GROUP"
)

func (t Type) Valid() bool { return t == TypeIndividual || t == TypeGroup }

type Client struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	ClientID    string    `gorm:"column:client_id;size:32;uniqueIndex:ux_clients_client_id" json:"client_id"`
	FirstName   string    `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName    string    `gorm:"column:last_name;size:100" json:"last_name"`
	ClientType  Type      `gorm:"column:client_type;type:enum('INDIVIDUAL','GROUP');default:'INDIVIDUAL'" json:"client_type"`
	NationalID  string    `gorm:"column:national_id;size:30;uniqueIndex:ux_clients_national_id" json:"national_id"`
	PhoneNumber string    `gorm:"column:phone_number;size:20" json:"phone_number"`
	Status      Status    `gorm:"column:status;type:enum('ACTIVE','INACTIVE');default:'ACTIVE'" json:"status"`
	CreatedBy   string    `gorm:"column:created_by;size:32" json:"created_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

// CanApply reports whether the client may open a new loan application.
func (c *Client) CanApply() bool { return c.Status == StatusActive }

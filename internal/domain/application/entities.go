package application

import (
	"time"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = apperr.NotFound("loan application not found")
	ErrInvalidTransition = apperr.Consistency("invalid application status transition")
	ErrNotPending        = apperr.Validation("status", "application is not pending")
	ErrNotApproved       = apperr.Validation("status", "application is not approved")
	ErrStaleWrite        = apperr.Conflict("application was modified concurrently")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDisbursed Status = "DISBURSED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed:
		return true
	}
	return false
}

// CanTransitionTo encodes the workflow:
// PENDING → APPROVED | REJECTED, APPROVED → DISBURSED. Nothing leaves
// REJECTED or DISBURSED, and nothing returns to PENDING.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusDisbursed
	case StatusRejected, StatusDisbursed:
		return false
	default:
		return false
	}
}

type Application struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID   string          `gorm:"column:application_id;size:32;uniqueIndex:ux_applications_application_id" json:"application_id"`
	ClientID        uint64          `gorm:"column:client_id;not null;index:idx_applications_client" json:"-"`
	ProductID       uint64          `gorm:"column:product_id;not null;index:idx_applications_product" json:"-"`
	AmountRequested decimal.Decimal `gorm:"column:amount_requested;type:decimal(12,2);not null" json:"amount_requested"`
	Status          Status          `gorm:"column:status;type:enum('PENDING','APPROVED','REJECTED','DISBURSED');default:'PENDING';index:idx_applications_status" json:"status"`
	ApprovedBy      string          `gorm:"column:approved_by;size:32" json:"approved_by"`
	Remarks         string          `gorm:"column:remarks;type:text" json:"remarks"`
	ApplicationDate time.Time       `gorm:"column:application_date;type:date" json:"application_date"`
	DecidedAt       *time.Time      `gorm:"column:decided_at" json:"decided_at"`
	Version         uint64          `gorm:"column:version;not null" json:"-"`
	CreatedBy       string          `gorm:"column:created_by;size:32" json:"created_by"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// TransitionTo moves the application to next, or fails without touching it.
func (a *Application) TransitionTo(next Status) error {
	if !a.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	a.Status = next
	return nil
}

// Amend replaces the terms of a pending application. The caller checks the
// amount against the product limit.
func (a *Application) Amend(productID uint64, amount decimal.Decimal, remarks string) error {
	if a.Status != StatusPending {
		return ErrNotPending
	}
	a.ProductID = productID
	a.AmountRequested = amount
	a.Remarks = remarks
	return nil
}

// Decide records an approver's verdict on a pending application.
func (a *Application) Decide(next Status, actor, remarks string, at time.Time) error {
	if next != StatusApproved && next != StatusRejected {
		return ErrInvalidTransition
	}
	if a.Status != StatusPending {
		return ErrNotPending
	}
	if err := a.TransitionTo(next); err != nil {
		return err
	}
	a.ApprovedBy = actor
	if remarks != "" {
		a.Remarks = remarks
	}
	decided := at.UTC()
	a.DecidedAt = &decided
	return nil
}

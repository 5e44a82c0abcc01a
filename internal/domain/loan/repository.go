package loan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Loan, error)
	// List returns loans newest first; an empty status means all.
	List(ctx context.Context, status Status) ([]Loan, error)
	// ListOverdue returns ACTIVE loans with a positive balance due before cutoff.
	ListOverdue(ctx context.Context, cutoff time.Time) ([]Loan, error)
	// Save persists balance and status guarded by Version and bumps it.
	// Returns ErrStaleWrite when the row changed since it was read.
	Save(ctx context.Context, l *Loan) error
}

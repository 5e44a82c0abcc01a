package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row until the surrounding tx ends.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	// List returns applications newest first; an empty status means all.
	List(ctx context.Context, status Status) ([]Application, error)
	// Save persists the mutable fields guarded by Version and bumps it.
	// Returns ErrStaleWrite when the row changed since it was read.
	Save(ctx context.Context, a *Application) error
}

package client

import (
	"context"
	"errors"
	"strings"

	"microfinance-backoffice/internal/domain/apperr"
	domain "microfinance-backoffice/internal/domain/client"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrDuplicateNationalID = apperr.Conflict("a client with this national id already exists")

type Usecase struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: logger.OrNop(log)}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput, actor string) (*ClientDTO, error) {
	c := &domain.Client{
		ClientID:    id.NewID32(),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		ClientType:  domain.Type(strings.ToUpper(in.ClientType)),
		NationalID:  strings.TrimSpace(in.NationalID),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Status:      domain.StatusActive,
		CreatedBy:   actor,
	}
	if c.ClientType == "" {
		c.ClientType = domain.TypeIndividual
	}
	switch {
	case c.FirstName == "":
		return nil, apperr.Validation("first_name", "is required")
	case c.NationalID == "":
		return nil, apperr.Validation("national_id", "is required")
	case !c.ClientType.Valid():
		return nil, apperr.Validation("client_type", "must be one of INDIVIDUAL, GROUP")
	}

	_, err := u.repo.GetByNationalID(ctx, c.NationalID)
	switch {
	case err == nil:
		return nil, ErrDuplicateNationalID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.log.Info("client registered", zap.String("client_id", c.ClientID), zap.String("actor", actor))
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, clientID string) (*ClientDTO, error) {
	c, err := u.repo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}
	return toDTO(c), nil
}

// List returns clients by name, optionally filtered by status.
func (u *Usecase) List(ctx context.Context, status string) ([]ClientDTO, error) {
	st := domain.Status(strings.ToUpper(status))
	if st != "" && !st.Valid() {
		return nil, apperr.Validation("status", "must be one of ACTIVE, INACTIVE")
	}
	cs, err := u.repo.List(ctx, st)
	if err != nil {
		return nil, err
	}
	out := make([]ClientDTO, 0, len(cs))
	for i := range cs {
		out = append(out, *toDTO(&cs[i]))
	}
	return out, nil
}

// SetStatus activates or deactivates a client. Inactive clients cannot
// submit new applications; their existing loans are unaffected.
func (u *Usecase) SetStatus(ctx context.Context, clientID, status, actor string) (*ClientDTO, error) {
	next := domain.Status(strings.ToUpper(status))
	if !next.Valid() {
		return nil, apperr.Validation("status", "must be one of ACTIVE, INACTIVE")
	}
	c, err := u.repo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}
	if c.Status == next {
		return toDTO(c), nil
	}
	c.Status = next
	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	u.log.Info("client status changed",
		zap.String("client_id", c.ClientID),
		zap.String("status", string(next)),
		zap.String("actor", actor))
	return toDTO(c), nil
}

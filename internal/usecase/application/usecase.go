package application

import (
	"context"
	"strings"
	"time"

	"microfinance-backoffice/internal/domain/apperr"
	domain "microfinance-backoffice/internal/domain/application"
	"microfinance-backoffice/internal/domain/client"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/infrastructure/metrics"
	"microfinance-backoffice/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	log   *zap.Logger
	now   func() time.Time
}

// NewUsecase: repos serve reads, tx serves the locked decision flows.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, log: logger.OrNop(log), now: time.Now}
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput, actor string) (dto *ApplicationDTO, err error) {
	defer func(start time.Time) { metrics.Observe("application_submit", start, err) }(time.Now())

	amt := in.AmountRequested
	if err := checkAmount(amt); err != nil {
		return nil, err
	}

	c, err := u.repos.Clients.GetByClientID(ctx, in.ClientID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, client.ErrNotFound)
	}
	if !c.CanApply() {
		return nil, client.ErrInactive
	}
	p, err := u.repos.Products.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, product.ErrNotFound)
	}
	if err := checkLimit(amt, p); err != nil {
		return nil, err
	}

	a := &domain.Application{
		ApplicationID:   id.NewID32(),
		ClientID:        c.ID,
		ProductID:       p.ID,
		AmountRequested: amt,
		Status:          domain.StatusPending,
		Remarks:         strings.TrimSpace(in.Remarks),
		ApplicationDate: loan.DateOf(u.now()),
		CreatedBy:       actor,
	}
	if err := u.repos.Applications.Create(ctx, a); err != nil {
		return nil, err
	}
	u.log.Info("application submitted",
		zap.String("application_id", a.ApplicationID),
		zap.String("client_id", c.ClientID),
		zap.String("amount_requested", amt.StringFixed(2)),
		zap.String("actor", actor))
	return toDTO(a, c.ClientID, p.ProductID), nil
}

// Update amends a pending application. When ProductID is empty the product
// stays; either way the amount is checked against the resulting product.
func (u *Usecase) Update(ctx context.Context, in UpdateInput, actor string) (dto *ApplicationDTO, err error) {
	defer func(start time.Time) { metrics.Observe("application_update", start, err) }(time.Now())

	if err := checkAmount(in.AmountRequested); err != nil {
		return nil, err
	}

	var amended *domain.Application
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		if a.Status != domain.StatusPending {
			return domain.ErrNotPending
		}
		var p *product.Product
		var err error
		if in.ProductID != "" {
			p, err = r.Products.GetByProductID(ctx, in.ProductID)
		} else {
			p, err = r.Products.GetByID(ctx, a.ProductID)
		}
		if err != nil {
			return apperr.Replace(err, gorm.ErrRecordNotFound, product.ErrNotFound)
		}
		if err := checkLimit(in.AmountRequested, p); err != nil {
			return err
		}
		if err := a.Amend(p.ID, in.AmountRequested, strings.TrimSpace(in.Remarks)); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		amended = a
		return nil
	})
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}

	u.log.Info("application amended",
		zap.String("application_id", amended.ApplicationID),
		zap.String("amount_requested", amended.AmountRequested.StringFixed(2)),
		zap.String("actor", actor))
	return newResolver(u.repos).dto(ctx, amended)
}

func checkAmount(amt decimal.Decimal) error {
	if !amt.IsPositive() {
		return apperr.Validation("amount_requested", "must be greater than 0")
	}
	if !amt.Equal(amt.Round(2)) {
		return apperr.Validation("amount_requested", "must have at most 2 decimal places")
	}
	return nil
}

func checkLimit(amt decimal.Decimal, p *product.Product) error {
	if amt.GreaterThan(p.MaxAmount) {
		return apperr.Validation("amount_requested", "cannot exceed the product maximum of %s", p.MaxAmount.StringFixed(2))
	}
	return nil
}

func (u *Usecase) Approve(ctx context.Context, in DecisionInput, actor string) (*ApplicationDTO, error) {
	return u.decide(ctx, "application_approve", domain.StatusApproved, in, actor)
}

func (u *Usecase) Reject(ctx context.Context, in DecisionInput, actor string) (*ApplicationDTO, error) {
	return u.decide(ctx, "application_reject", domain.StatusRejected, in, actor)
}

func (u *Usecase) decide(ctx context.Context, op string, next domain.Status, in DecisionInput, actor string) (dto *ApplicationDTO, err error) {
	defer func(start time.Time) { metrics.Observe(op, start, err) }(time.Now())

	var decided *domain.Application
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		if err := a.Decide(next, actor, strings.TrimSpace(in.Remarks), u.now()); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		decided = a
		return nil
	})
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}

	u.log.Info("application decided",
		zap.String("application_id", decided.ApplicationID),
		zap.String("status", string(decided.Status)),
		zap.String("actor", actor))
	return newResolver(u.repos).dto(ctx, decided)
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ApplicationDTO, error) {
	a, err := u.repos.Applications.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}
	return newResolver(u.repos).dto(ctx, a)
}

// List returns applications newest first, optionally filtered by status.
func (u *Usecase) List(ctx context.Context, status string) ([]ApplicationDTO, error) {
	st := domain.Status(strings.ToUpper(status))
	if st != "" && !st.Valid() {
		return nil, apperr.Validation("status", "must be one of PENDING, APPROVED, REJECTED, DISBURSED")
	}
	as, err := u.repos.Applications.List(ctx, st)
	if err != nil {
		return nil, err
	}
	res := newResolver(u.repos)
	out := make([]ApplicationDTO, 0, len(as))
	for i := range as {
		dto, err := res.dto(ctx, &as[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

// resolver maps internal client/product keys to public ids, once per key.
type resolver struct {
	repos    uow.Repos
	clients  map[uint64]string
	products map[uint64]string
}

func newResolver(r uow.Repos) *resolver {
	return &resolver{repos: r, clients: map[uint64]string{}, products: map[uint64]string{}}
}

func (r *resolver) dto(ctx context.Context, a *domain.Application) (*ApplicationDTO, error) {
	cid, ok := r.clients[a.ClientID]
	if !ok {
		c, err := r.repos.Clients.GetByID(ctx, a.ClientID)
		if err != nil {
			return nil, apperr.Replace(err, gorm.ErrRecordNotFound, client.ErrNotFound)
		}
		cid = c.ClientID
		r.clients[a.ClientID] = cid
	}
	pid, ok := r.products[a.ProductID]
	if !ok {
		p, err := r.repos.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return nil, apperr.Replace(err, gorm.ErrRecordNotFound, product.ErrNotFound)
		}
		pid = p.ProductID
		r.products[a.ProductID] = pid
	}
	return toDTO(a, cid, pid), nil
}

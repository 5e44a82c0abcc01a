package product

import (
	"context"
	"strings"

	"microfinance-backoffice/internal/domain/apperr"
	domain "microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewUsecase(r domain.Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: logger.OrNop(log)}
}

func (in ProductInput) apply(p *domain.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.InterestRate = in.InterestRate
	p.DurationMonths = in.DurationMonths
	p.RepaymentFrequency = domain.Frequency(strings.ToUpper(in.RepaymentFrequency))
	if p.RepaymentFrequency == "" {
		p.RepaymentFrequency = domain.FrequencyMonthly
	}
	p.MaxAmount = in.MaxAmount
}

func (u *Usecase) Create(ctx context.Context, in ProductInput, actor string) (*ProductDTO, error) {
	p := &domain.Product{ProductID: id.NewID32(), CreatedBy: actor}
	in.apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	u.log.Info("product created",
		zap.String("product_id", p.ProductID),
		zap.String("interest_rate", p.InterestRate.String()),
		zap.Int("duration_months", p.DurationMonths),
		zap.String("actor", actor))
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, productID string) (*ProductDTO, error) {
	p, err := u.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}
	return toDTO(p), nil
}

func (u *Usecase) List(ctx context.Context) ([]ProductDTO, error) {
	ps, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(ps))
	for i := range ps {
		out = append(out, *toDTO(&ps[i]))
	}
	return out, nil
}

// Update rewrites the catalog terms. Loans already disbursed keep the rate
// and duration they were opened with.
func (u *Usecase) Update(ctx context.Context, productID string, in ProductInput, actor string) (*ProductDTO, error) {
	p, err := u.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, domain.ErrNotFound)
	}
	in.apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	u.log.Info("product updated", zap.String("product_id", p.ProductID), zap.String("actor", actor))
	return toDTO(p), nil
}

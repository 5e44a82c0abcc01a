package report

import (
	"context"
	"time"

	"microfinance-backoffice/internal/domain/loan"
	domain "microfinance-backoffice/internal/domain/report"
	"microfinance-backoffice/internal/infrastructure/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Usecase struct {
	reader domain.Reader
	log    *zap.Logger
	now    func() time.Time
}

func NewUsecase(r domain.Reader, log *zap.Logger) *Usecase {
	return &Usecase{reader: r, log: logger.OrNop(log), now: time.Now}
}

var hundred = decimal.NewFromInt(100)

const (
	topProducts        = 3
	recentApplications = 10
)

// percentChange is (cur-prev)/prev in percent, rounded to 2dp; 0 when prev is 0.
func percentChange(cur, prev decimal.Decimal) decimal.Decimal {
	if !prev.IsPositive() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred).Round(2)
}

func (u *Usecase) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	today := loan.DateOf(u.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	windows := []domain.Window{
		{},
		{From: today, To: today.AddDate(0, 0, 1)},
		{From: monthStart, To: monthStart.AddDate(0, 1, 0)},
		{From: monthStart.AddDate(0, -1, 0), To: monthStart},
	}
	flows := make([]domain.Flows, len(windows))
	for i, w := range windows {
		f, err := u.reader.Flows(ctx, w)
		if err != nil {
			return nil, err
		}
		flows[i] = f
	}
	pf, err := u.reader.Portfolio(ctx)
	if err != nil {
		return nil, err
	}
	top, err := u.reader.TopProducts(ctx, topProducts)
	if err != nil {
		return nil, err
	}
	recent, err := u.reader.RecentApplications(ctx, recentApplications)
	if err != nil {
		return nil, err
	}

	month, last := flows[2], flows[3]
	out := &DashboardDTO{
		AsOf:      today.Format(time.DateOnly),
		Overall:   flowsDTO(flows[0]),
		Today:     flowsDTO(flows[1]),
		ThisMonth: flowsDTO(month),
		LastMonth: flowsDTO(last),
		ChangePct: flowsDTO(domain.Flows{
			Applied:   percentChange(month.Applied, last.Applied),
			Disbursed: percentChange(month.Disbursed, last.Disbursed),
			Repaid:    percentChange(month.Repaid, last.Repaid),
		}),
		ActiveLoans:         pf.ActiveLoans,
		TotalLoans:          pf.TotalLoans,
		PendingApplications: pf.PendingApplications,
		OutstandingBalance:  pf.OutstandingBalance.StringFixed(2),
		TopProducts:         rankDTOs(top),
		RecentApplications:  recentDTOs(recent),
	}
	u.log.Debug("dashboard computed", zap.String("as_of", out.AsOf), zap.Int64("active_loans", out.ActiveLoans))
	return out, nil
}

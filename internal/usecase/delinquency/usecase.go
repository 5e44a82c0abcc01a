// Package delinquency moves overdue loans to DEFAULTED.
package delinquency

import (
	"context"
	"time"

	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type Result struct {
	AsOf      string   `json:"as_of"`
	Checked   int      `json:"checked"`
	Defaulted []string `json:"defaulted"`
	Failed    int      `json:"failed"`
}

type Usecase struct {
	repos     uow.Repos
	uow       uow.UnitOfWork
	graceDays int
	log       *zap.Logger
	now       func() time.Time
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, graceDays int, log *zap.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, graceDays: graceDays, log: logger.OrNop(log), now: time.Now}
}

// Sweep defaults every ACTIVE loan with a positive balance whose due date
// plus the grace period is before asOf. Each loan is re-read under its row
// lock, so a repayment that lands between listing and locking wins. A failure
// on one loan is logged and counted; the sweep carries on.
func (u *Usecase) Sweep(ctx context.Context, asOf time.Time) (res *Result, err error) {
	defer func(start time.Time) { metrics.Observe("delinquency_sweep", start, err) }(time.Now())

	cutoff := loan.DateOf(asOf).AddDate(0, 0, -u.graceDays)
	candidates, err := u.repos.Loans.ListOverdue(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	res = &Result{AsOf: loan.DateOf(asOf).Format(time.DateOnly), Checked: len(candidates), Defaulted: []string{}}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		var defaulted bool
		txErr := u.uow.WithinLoanTx(ctx, c.LoanID, func(r uow.Repos, l *loan.Loan) error {
			if !l.IsOverdue(cutoff) {
				return nil
			}
			if err := l.MarkDefaulted(); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			defaulted = true
			return nil
		})
		switch {
		case txErr != nil:
			res.Failed++
			u.log.Warn("delinquency: loan not defaulted", zap.String("loan_id", c.LoanID), zap.Error(txErr))
		case defaulted:
			res.Defaulted = append(res.Defaulted, c.LoanID)
			metrics.LoansDefaulted.Inc()
		}
	}
	u.log.Info("delinquency sweep done",
		zap.String("as_of", res.AsOf),
		zap.Int("checked", res.Checked),
		zap.Int("defaulted", len(res.Defaulted)),
		zap.Int("failed", res.Failed))
	return res, nil
}

// Job adapts Sweep to the scheduler, sweeping as of the current time.
func (u *Usecase) Job(ctx context.Context) error {
	_, err := u.Sweep(ctx, u.now())
	return err
}

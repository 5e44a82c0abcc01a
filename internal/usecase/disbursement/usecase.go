package disbursement

import (
	"context"
	"errors"
	"strings"
	"time"

	"microfinance-backoffice/internal/domain/apperr"
	"microfinance-backoffice/internal/domain/application"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/internal/infrastructure/logger"
	"microfinance-backoffice/internal/infrastructure/metrics"
	"microfinance-backoffice/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	log   *zap.Logger
	now   func() time.Time
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, log: logger.OrNop(log), now: time.Now}
}

// Disburse turns an APPROVED application into an ACTIVE loan. The loan row
// and the application's move to DISBURSED commit together or not at all.
func (u *Usecase) Disburse(ctx context.Context, in DisburseInput, actor string) (dto *LoanDTO, err error) {
	defer func(start time.Time) { metrics.Observe("disburse", start, err) }(time.Now())

	disbursedOn := in.DisbursementDate
	if disbursedOn.IsZero() {
		disbursedOn = u.now()
	}

	var opened *loan.Loan
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) error {
		// one loan per application, checked first so a repeat reads as a conflict
		_, err := r.Loans.GetByApplicationID(ctx, a.ID)
		switch {
		case err == nil:
			return loan.ErrAlreadyDisbursed
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if a.Status != application.StatusApproved {
			return application.ErrNotApproved
		}

		amt := in.DisbursedAmount
		switch {
		case !amt.IsPositive():
			return apperr.Validation("disbursed_amount", "must be greater than 0")
		case !amt.Equal(amt.Round(2)):
			return apperr.Validation("disbursed_amount", "must have at most 2 decimal places")
		case amt.GreaterThan(a.AmountRequested):
			return apperr.Validation("disbursed_amount", "cannot exceed the requested amount of %s", a.AmountRequested.StringFixed(2))
		}

		p, err := r.Products.GetByID(ctx, a.ProductID)
		if err != nil {
			return apperr.Replace(err, gorm.ErrRecordNotFound, product.ErrNotFound)
		}

		l := loan.Open(a.ID, amt, p.InterestRate, p.DurationMonths, disbursedOn)
		l.LoanID = id.NewID32()
		l.CreatedBy = actor
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		if err := a.TransitionTo(application.StatusDisbursed); err != nil {
			return err
		}
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		opened = l
		return nil
	})
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, application.ErrNotFound)
	}

	metrics.AddAmount("disburse", opened.DisbursedAmount)
	u.log.Info("loan disbursed",
		zap.String("loan_id", opened.LoanID),
		zap.String("application_id", in.ApplicationID),
		zap.String("principal", opened.DisbursedAmount.StringFixed(2)),
		zap.String("total_payable", opened.TotalPayable.StringFixed(2)),
		zap.Time("due_date", opened.DueDate),
		zap.String("actor", actor))
	return ToDTO(opened, in.ApplicationID), nil
}

func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, loan.ErrNotFound)
	}
	appID, err := u.applicationID(ctx, l.ApplicationID)
	if err != nil {
		return nil, err
	}
	return ToDTO(l, appID), nil
}

// ListLoans returns loans newest first, optionally filtered by status.
func (u *Usecase) ListLoans(ctx context.Context, status string) ([]LoanDTO, error) {
	st := loan.Status(strings.ToUpper(status))
	if st != "" && !st.Valid() {
		return nil, apperr.Validation("status", "must be one of ACTIVE, CLOSED, DEFAULTED")
	}
	ls, err := u.repos.Loans.List(ctx, st)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		appID, err := u.applicationID(ctx, ls[i].ApplicationID)
		if err != nil {
			return nil, err
		}
		out = append(out, *ToDTO(&ls[i], appID))
	}
	return out, nil
}

func (u *Usecase) applicationID(ctx context.Context, key uint64) (string, error) {
	a, err := u.repos.Applications.GetByID(ctx, key)
	if err != nil {
		return "", apperr.Replace(err, gorm.ErrRecordNotFound, application.ErrNotFound)
	}
	return a.ApplicationID, nil
}

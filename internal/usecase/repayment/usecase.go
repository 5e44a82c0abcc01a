package repayment

import (
	"context"
	"strings"
	"time"

	"microfinance-backoffice/internal/domain/apperr"
	"microfinance-backoffice/internal/domain/loan"
	domain "microfinance-backoffice/internal/domain/repayment"
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

// Post records a payment against an ACTIVE loan under the loan's row lock.
// The repayment row and the new balance commit together or not at all; a
// payment that clears the balance closes the loan.
func (u *Usecase) Post(ctx context.Context, in PostInput, actor string) (dto *RepaymentDTO, err error) {
	defer func(start time.Time) { metrics.Observe("repayment", start, err) }(time.Now())

	if err := loan.ValidateRepaymentAmount(in.Amount); err != nil {
		return nil, err
	}
	method := domain.Method(strings.ToUpper(in.Method))
	if method == "" {
		method = domain.MethodCash
	}
	if !method.Valid() {
		return nil, apperr.Validation("method", "must be one of CASH, MOBILE, BANK")
	}
	paidOn := in.PaymentDate
	if paidOn.IsZero() {
		paidOn = u.now()
	}

	var (
		posted *domain.Repayment
		after  loan.Loan
	)
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.ApplyRepayment(in.Amount); err != nil {
			return err
		}
		rp := &domain.Repayment{
			RepaymentID: id.NewID32(),
			LoanID:      l.ID,
			Amount:      in.Amount,
			PaymentDate: loan.DateOf(paidOn),
			Method:      method,
			CreatedBy:   actor,
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		posted, after = rp, *l
		return nil
	})
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, loan.ErrNotFound)
	}

	metrics.AddAmount("repayment", posted.Amount)
	u.log.Info("repayment posted",
		zap.String("repayment_id", posted.RepaymentID),
		zap.String("loan_id", after.LoanID),
		zap.String("amount", posted.Amount.StringFixed(2)),
		zap.String("balance", after.Balance.StringFixed(2)),
		zap.String("loan_status", string(after.Status)),
		zap.String("actor", actor))

	dto = toDTO(posted, after.LoanID)
	dto.BalanceAfter = after.Balance.StringFixed(2)
	dto.LoanStatus = string(after.Status)
	return dto, nil
}

// ListByLoan returns a loan's repayments, newest payment date first.
func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]RepaymentDTO, error) {
	l, err := u.repos.Loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, loan.ErrNotFound)
	}
	rps, err := u.repos.Repayments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]RepaymentDTO, 0, len(rps))
	for i := range rps {
		out = append(out, *toDTO(&rps[i], l.LoanID))
	}
	return out, nil
}

// Statement reads the loan and its repayments in one transaction so the
// totals describe the same moment.
func (u *Usecase) Statement(ctx context.Context, loanID string) (*StatementDTO, error) {
	var st *StatementDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			return err
		}
		rps, err := r.Repayments.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		repaid, err := r.Repayments.SumByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		st = toStatement(l, repaid, len(rps))
		return nil
	})
	if err != nil {
		return nil, apperr.Replace(err, gorm.ErrRecordNotFound, loan.ErrNotFound)
	}
	if !st.Reconciled {
		u.log.Warn("loan statement does not reconcile",
			zap.String("loan_id", st.LoanID),
			zap.String("total_payable", st.TotalPayable),
			zap.String("total_repaid", st.TotalRepaid),
			zap.String("balance", st.Balance))
	}
	return st, nil
}

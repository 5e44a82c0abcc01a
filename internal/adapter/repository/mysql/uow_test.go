package mysql

import (
	"context"
	"errors"
	"testing"

	appDomain "microfinance-backoffice/internal/domain/application"
	loanDomain "microfinance-backoffice/internal/domain/loan"
	repaymentDomain "microfinance-backoffice/internal/domain/repayment"
	"microfinance-backoffice/internal/domain/uow"
	"microfinance-backoffice/pkg/id"

	"gorm.io/gorm"
)

func TestGormUoW_WithinApplicationTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := seedApproved(t, db, "1000")

	var loanID string
	err := NewGormUoW(db).WithinApplicationTx(ctx, a.ApplicationID, func(r uow.Repos, locked *appDomain.Application) error {
		l := loanDomain.Open(locked.ID, locked.AmountRequested, dec("12"), 12, day(2024, 1, 15))
		l.LoanID = id.NewID32()
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		loanID = l.LoanID
		if err := locked.TransitionTo(appDomain.StatusDisbursed); err != nil {
			return err
		}
		return r.Applications.Save(ctx, locked)
	})
	if err != nil {
		t.Fatalf("WithinApplicationTx commit err: %v", err)
	}

	if _, err := NewLoanRepository(db).GetByLoanID(ctx, loanID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	got, _ := NewApplicationRepository(db).GetByApplicationID(ctx, a.ApplicationID)
	if got.Status != appDomain.StatusDisbursed {
		t.Fatalf("status = %s, want DISBURSED", got.Status)
	}
}

func TestGormUoW_WithinApplicationTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	a := seedApproved(t, db, "1000")
	boom := errors.New("boom")

	err := NewGormUoW(db).WithinApplicationTx(ctx, a.ApplicationID, func(r uow.Repos, locked *appDomain.Application) error {
		l := loanDomain.Open(locked.ID, locked.AmountRequested, dec("12"), 12, day(2024, 1, 15))
		l.LoanID = id.NewID32()
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if _, err := NewLoanRepository(db).GetByApplicationID(ctx, a.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("loan should be rolled back, got %v", err)
	}
	got, _ := NewApplicationRepository(db).GetByApplicationID(ctx, a.ApplicationID)
	if got.Status != appDomain.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", got.Status)
	}
}

func TestGormUoW_WithinLoanTx(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	l := seedLoan(t, db, "1000", day(2024, 1, 15))
	u := NewGormUoW(db)

	err := u.WithinLoanTx(ctx, l.LoanID, func(r uow.Repos, locked *loanDomain.Loan) error {
		if err := locked.ApplyRepayment(dec("1120")); err != nil {
			return err
		}
		if err := r.Repayments.Create(ctx, &repaymentDomain.Repayment{
			RepaymentID: id.NewID32(), LoanID: locked.ID, Amount: dec("1120"),
			PaymentDate: day(2024, 2, 1), Method: repaymentDomain.MethodBank,
		}); err != nil {
			return err
		}
		return r.Loans.Save(ctx, locked)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	got, _ := NewLoanRepository(db).GetByLoanID(ctx, l.LoanID)
	if got.Status != loanDomain.StatusClosed || !got.Balance.IsZero() {
		t.Fatalf("loan = %s / %s, want CLOSED / 0", got.Status, got.Balance)
	}

	err = u.WithinLoanTx(ctx, "00000000000000000000000000000000", func(uow.Repos, *loanDomain.Loan) error {
		t.Fatal("fn must not run for a missing loan")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	l := seedLoan(t, db, "1000", day(2024, 1, 15))

	err := NewGormUoW(db).WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Repayments.Create(ctx, &repaymentDomain.Repayment{
			RepaymentID: id.NewID32(), LoanID: l.ID, Amount: dec("10"),
			PaymentDate: day(2024, 2, 1), Method: repaymentDomain.MethodCash,
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	sum, _ := NewRepaymentRepository(db).SumByLoanID(ctx, l.ID)
	if !sum.IsZero() {
		t.Fatalf("repayment should be rolled back, sum = %s", sum)
	}
}

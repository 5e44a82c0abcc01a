package loanmock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "microfinance-backoffice/internal/domain/loan"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{LoanID: "LN-1"}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if gotCtx != ctx || got != l {
				t.Fatalf("arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	if err := (&Repo{}).Create(ctx, l); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_Getters(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{LoanID: "LN-2", ApplicationID: 7}

	m := &Repo{
		GetByLoanIDFn:          func(_ context.Context, id string) (*domain.Loan, error) { return want, nil },
		GetByLoanIDForUpdateFn: func(_ context.Context, id string) (*domain.Loan, error) { return want, nil },
		GetByApplicationIDFn: func(_ context.Context, id uint64) (*domain.Loan, error) {
			if id != 7 {
				t.Fatalf("applicationID mismatch: got %d", id)
			}
			return want, nil
		},
	}
	if got, _ := m.GetByLoanID(ctx, "LN-2"); got != want {
		t.Fatalf("GetByLoanID: got %+v", got)
	}
	if got, _ := m.GetByLoanIDForUpdate(ctx, "LN-2"); got != want {
		t.Fatalf("GetByLoanIDForUpdate: got %+v", got)
	}
	if got, _ := m.GetByApplicationID(ctx, 7); got != want {
		t.Fatalf("GetByApplicationID: got %+v", got)
	}

	// Default (nil func) → context.Canceled
	empty := &Repo{}
	if _, err := empty.GetByLoanID(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByLoanID default: got %v", err)
	}
	if _, err := empty.GetByLoanIDForUpdate(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByLoanIDForUpdate default: got %v", err)
	}
	if _, err := empty.GetByApplicationID(ctx, 1); err != context.Canceled {
		t.Fatalf("GetByApplicationID default: got %v", err)
	}
	if _, err := empty.List(ctx, ""); err != context.Canceled {
		t.Fatalf("List default: got %v", err)
	}
	if _, err := empty.ListOverdue(ctx, time.Now()); err != context.Canceled {
		t.Fatalf("ListOverdue default: got %v", err)
	}
}

func TestRepo_Save(t *testing.T) {
	ctx := context.Background()
	m := &Repo{SaveFn: func(context.Context, *domain.Loan) error { return domain.ErrStaleWrite }}
	if err := m.Save(ctx, &domain.Loan{}); !errors.Is(err, domain.ErrStaleWrite) {
		t.Fatalf("Save: got %v", err)
	}
	if err := (&Repo{}).Save(ctx, &domain.Loan{}); err != nil {
		t.Fatalf("Save default: got %v", err)
	}
}

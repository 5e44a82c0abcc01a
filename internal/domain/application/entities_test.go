package application

import (
	"errors"
	"testing"
	"time"

	"microfinance-backoffice/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

func TestCanTransitionTo(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusRejected, StatusDisbursed}
	allowed := map[[2]Status]bool{
		{StatusPending, StatusApproved}:   true,
		{StatusPending, StatusRejected}:   true,
		{StatusApproved, StatusDisbursed}: true,
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Fatalf("%s -> %s = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestDecide(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	a := &Application{Status: StatusPending}
	if err := a.Decide(StatusApproved, "approver", "looks good", at); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if a.Status != StatusApproved || a.ApprovedBy != "approver" || a.Remarks != "looks good" {
		t.Fatalf("unexpected application: %+v", a)
	}
	if a.DecidedAt == nil || a.DecidedAt.Location() != time.UTC {
		t.Fatalf("DecidedAt must be set in UTC, got %v", a.DecidedAt)
	}

	// already decided
	if err := a.Decide(StatusRejected, "other", "", at); !errors.Is(err, ErrNotPending) {
		t.Fatalf("want ErrNotPending, got %v", err)
	}
	if a.Status != StatusApproved {
		t.Fatalf("status changed on failed decision: %s", a.Status)
	}

	// decisions only approve or reject
	b := &Application{Status: StatusPending}
	if err := b.Decide(StatusDisbursed, "x", "", at); !errors.Is(err, apperr.ErrConsistency) {
		t.Fatalf("want consistency error, got %v", err)
	}
}

func TestTransitionTo_NoReopen(t *testing.T) {
	for _, s := range []Status{StatusApproved, StatusRejected, StatusDisbursed} {
		a := &Application{Status: s}
		if err := a.TransitionTo(StatusPending); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s -> PENDING should fail, got %v", s, err)
		}
	}
}

func TestAmend(t *testing.T) {
	a := &Application{ProductID: 1, AmountRequested: decimal.NewFromInt(1000), Status: StatusPending}
	if err := a.Amend(2, decimal.NewFromInt(1500), "topped up"); err != nil {
		t.Fatalf("Amend: %v", err)
	}
	if a.ProductID != 2 || !a.AmountRequested.Equal(decimal.NewFromInt(1500)) || a.Remarks != "topped up" {
		t.Fatalf("unexpected application: %+v", a)
	}

	for _, s := range []Status{StatusApproved, StatusRejected, StatusDisbursed} {
		b := &Application{ProductID: 1, AmountRequested: decimal.NewFromInt(1000), Status: s}
		if err := b.Amend(2, decimal.NewFromInt(1), ""); !errors.Is(err, ErrNotPending) {
			t.Fatalf("%s: want ErrNotPending, got %v", s, err)
		}
		if b.ProductID != 1 || !b.AmountRequested.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("%s: failed amend changed the application: %+v", s, b)
		}
	}
}

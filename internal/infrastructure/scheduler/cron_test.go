package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestAdd_EmptySpecDisables(t *testing.T) {
	s := New(zaptest.NewLogger(t), time.Second)
	ok, err := s.Add("sweep", "", func(context.Context) error { return nil })
	if err != nil || ok {
		t.Fatalf("Add = %v, %v; want false, nil", ok, err)
	}
	if n := len(s.cron.Entries()); n != 0 {
		t.Fatalf("entries = %d, want 0", n)
	}
}

func TestAdd_InvalidSpec(t *testing.T) {
	s := New(zaptest.NewLogger(t), time.Second)
	if _, err := s.Add("sweep", "every tuesday-ish", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAdd_RunsJobWithDeadline(t *testing.T) {
	s := New(zaptest.NewLogger(t), time.Second)
	calls := 0
	ok, err := s.Add("sweep", "0 2 * * *", func(ctx context.Context) error {
		calls++
		if _, has := ctx.Deadline(); !has {
			t.Error("job context should carry the per-run timeout")
		}
		return errors.New("db down")
	})
	if err != nil || !ok {
		t.Fatalf("Add = %v, %v", ok, err)
	}

	entries := s.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	entries[0].Job.Run() // failure is logged, not propagated
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

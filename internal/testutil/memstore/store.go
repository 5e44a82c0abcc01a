// Package memstore is an in-memory stand-in for the gorm repositories.
// Transactions are serialised by one mutex and restored from a snapshot when
// the body fails, which is enough to exercise use-case rollback paths and
// concurrent posting without a database.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"microfinance-backoffice/internal/domain/application"
	"microfinance-backoffice/internal/domain/client"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/domain/repayment"
	"microfinance-backoffice/internal/domain/report"
	"microfinance-backoffice/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("memstore: duplicate key")

var (
	_ uow.UnitOfWork = (*Store)(nil)
	_ report.Reader  = (*Store)(nil)
)

type tables struct {
	seq        uint64
	products   map[uint64]product.Product
	clients    map[uint64]client.Client
	apps       map[uint64]application.Application
	loans      map[uint64]loan.Loan
	repayments map[uint64]repayment.Repayment
}

func (t tables) clone() tables {
	out := tables{
		seq:        t.seq,
		products:   make(map[uint64]product.Product, len(t.products)),
		clients:    make(map[uint64]client.Client, len(t.clients)),
		apps:       make(map[uint64]application.Application, len(t.apps)),
		loans:      make(map[uint64]loan.Loan, len(t.loans)),
		repayments: make(map[uint64]repayment.Repayment, len(t.repayments)),
	}
	for k, v := range t.products {
		out.products[k] = v
	}
	for k, v := range t.clients {
		out.clients[k] = v
	}
	for k, v := range t.apps {
		out.apps[k] = v
	}
	for k, v := range t.loans {
		out.loans[k] = v
	}
	for k, v := range t.repayments {
		out.repayments[k] = v
	}
	return out
}

type Store struct {
	tx   sync.Mutex   // one transaction at a time
	mu   sync.RWMutex // guards data
	data tables

	// FailOn, when set, is consulted before every write; a non-nil return
	// aborts the write with that error.
	FailOn func(op string) error
}

func New() *Store {
	return &Store{data: tables{}.clone()}
}

// Repos returns repositories that operate outside any transaction.
func (s *Store) Repos() uow.Repos {
	return uow.Repos{
		Products:     productRepo{s},
		Clients:      clientRepo{s},
		Applications: applicationRepo{s},
		Loans:        loanRepo{s},
		Repayments:   repaymentRepo{s},
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	return s.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return s.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (s *Store) write(op string, apply func(t *tables) error) error {
	if s.FailOn != nil {
		if err := s.FailOn(op); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(&s.data)
}

func (s *Store) read(fn func(t *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func (t *tables) nextID() uint64 {
	t.seq++
	return t.seq
}

func inWindow(d time.Time, w report.Window) bool {
	if !w.From.IsZero() && d.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !d.Before(w.To) {
		return false
	}
	return true
}

func (s *Store) Flows(_ context.Context, w report.Window) (report.Flows, error) {
	out := report.Flows{Applied: decimal.Zero, Disbursed: decimal.Zero, Repaid: decimal.Zero}
	s.read(func(t *tables) {
		for _, a := range t.apps {
			if inWindow(a.ApplicationDate, w) {
				out.Applied = out.Applied.Add(a.AmountRequested)
			}
		}
		for _, l := range t.loans {
			if inWindow(l.DisbursementDate, w) {
				out.Disbursed = out.Disbursed.Add(l.DisbursedAmount)
			}
		}
		for _, r := range t.repayments {
			if inWindow(r.PaymentDate, w) {
				out.Repaid = out.Repaid.Add(r.Amount)
			}
		}
	})
	return out, nil
}

func (s *Store) Portfolio(_ context.Context) (report.Portfolio, error) {
	out := report.Portfolio{OutstandingBalance: decimal.Zero}
	s.read(func(t *tables) {
		out.TotalLoans = int64(len(t.loans))
		for _, l := range t.loans {
			if l.Status == loan.StatusActive {
				out.ActiveLoans++
				out.OutstandingBalance = out.OutstandingBalance.Add(l.Balance)
			}
		}
		for _, a := range t.apps {
			if a.Status == application.StatusPending {
				out.PendingApplications++
			}
		}
	})
	return out, nil
}

func (s *Store) TopProducts(_ context.Context, n int) ([]report.ProductRank, error) {
	var out []report.ProductRank
	s.read(func(t *tables) {
		counts := make(map[uint64]int64, len(t.products))
		for _, a := range t.apps {
			counts[a.ProductID]++
		}
		for _, p := range t.products {
			out = append(out, report.ProductRank{ProductID: p.ProductID, Name: p.Name, Applications: counts[p.ID]})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Applications != out[j].Applications {
			return out[i].Applications > out[j].Applications
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *Store) RecentApplications(_ context.Context, n int) ([]report.RecentApplication, error) {
	var apps []application.Application
	var out []report.RecentApplication
	s.read(func(t *tables) {
		for _, a := range t.apps {
			apps = append(apps, a)
		}
		newestFirst(apps,
			func(a application.Application) time.Time { return a.CreatedAt },
			func(a application.Application) uint64 { return a.ID })
		if len(apps) > n {
			apps = apps[:n]
		}
		for _, a := range apps {
			c, p := t.clients[a.ClientID], t.products[a.ProductID]
			out = append(out, report.RecentApplication{
				ApplicationID:   a.ApplicationID,
				ClientName:      report.FullName(c.FirstName, c.LastName),
				ProductName:     p.Name,
				AmountRequested: a.AmountRequested,
				Status:          string(a.Status),
				ApplicationDate: a.ApplicationDate,
				CreatedAt:       a.CreatedAt,
			})
		}
	})
	return out, nil
}

// newestFirst orders by created time then id, both descending.
func newestFirst[T any](items []T, at func(T) time.Time, id func(T) uint64) {
	sort.Slice(items, func(i, j int) bool {
		ai, aj := at(items[i]), at(items[j])
		if !ai.Equal(aj) {
			return ai.After(aj)
		}
		return id(items[i]) > id(items[j])
	})
}

var errNotFound = gorm.ErrRecordNotFound

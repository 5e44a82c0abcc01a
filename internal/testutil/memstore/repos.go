package memstore

import (
	"context"
	"sort"
	"time"

	"microfinance-backoffice/internal/domain/application"
	"microfinance-backoffice/internal/domain/client"
	"microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *product.Product) error {
	return r.s.write("products.create", func(t *tables) error {
		p.ID = t.nextID()
		p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
		t.products[p.ID] = *p
		return nil
	})
}

func (r productRepo) Save(_ context.Context, p *product.Product) error {
	return r.s.write("products.save", func(t *tables) error {
		if _, ok := t.products[p.ID]; !ok {
			return errNotFound
		}
		p.UpdatedAt = time.Now()
		t.products[p.ID] = *p
		return nil
	})
}

func (r productRepo) GetByID(_ context.Context, id uint64) (*product.Product, error) {
	var out *product.Product
	r.s.read(func(t *tables) {
		if p, ok := t.products[id]; ok {
			out = &p
		}
	})
	if out == nil {
		return nil, errNotFound
	}
	return out, nil
}

func (r productRepo) GetByProductID(_ context.Context, productID string) (*product.Product, error) {
	var out *product.Product
	r.s.read(func(t *tables) {
		for _, p := range t.products {
			if p.ProductID == productID {
				p := p
				out = &p
				return
			}
		}
	})
	if out == nil {
		return nil, errNotFound
	}
	return out, nil
}

func (r productRepo) List(_ context.Context) ([]product.Product, error) {
	var out []product.Product
	r.s.read(func(t *tables) {
		for _, p := range t.products {
			out = append(out, p)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type clientRepo struct{ s *Store }

func (r clientRepo) Create(_ context.Context, c *client.Client) error {
	return r.s.write("clients.create", func(t *tables) error {
		for _, existing := range t.clients {
			if existing.NationalID == c.NationalID {
				return ErrDuplicate
			}
		}
		c.ID = t.nextID()
		c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
		t.clients[c.ID] = *c
		return nil
	})
}

func (r clientRepo) Save(_ context.Context, c *client.Client) error {
	return r.s.write("clients.save", func(t *tables) error {
		if _, ok := t.clients[c.ID]; !ok {
			return errNotFound
		}
		c.UpdatedAt = time.Now()
		t.clients[c.ID] = *c
		return nil
	})
}

func (r clientRepo) GetByID(_ context.Context, id uint64) (*client.Client, error) {
	return r.find(func(c client.Client) bool { return c.ID == id })
}

func (r clientRepo) GetByClientID(_ context.Context, clientID string) (*client.Client, error) {
	return r.find(func(c client.Client) bool { return c.ClientID == clientID })
}

func (r clientRepo) GetByNationalID(_ context.Context, nationalID string) (*client.Client, error) {
	return r.find(func(c client.Client) bool { return c.NationalID == nationalID })
}

func (r clientRepo) List(_ context.Context, status client.Status) ([]client.Client, error) {
	var out []client.Client
	r.s.read(func(t *tables) {
		for _, c := range t.clients {
			if status == "" || c.Status == status {
				out = append(out, c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r clientRepo) find(match func(client.Client) bool) (*client.Client, error) {
	var out *client.Client
	r.s.read(func(t *tables) {
		for _, c := range t.clients {
			if match(c) {
				c := c
				out = &c
				return
			}
		}
	})
	if out == nil {
		return nil, errNotFound
	}
	return out, nil
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, a *application.Application) error {
	return r.s.write("applications.create", func(t *tables) error {
		a.ID = t.nextID()
		a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
		t.apps[a.ID] = *a
		return nil
	})
}

func (r applicationRepo) GetByID(_ context.Context, id uint64) (*application.Application, error) {
	var out *application.Application
	r.s.read(func(t *tables) {
		if a, ok := t.apps[id]; ok {
			out = &a
		}
	})
	if out == nil {
		return nil, errNotFound
	}
	return out, nil
}

func (r applicationRepo) GetByApplicationID(_ context.Context, applicationID string) (*application.Application, error) {
	var out *application.Application
	r.s.read(func(t *tables) {
		for _, a := range t.apps {
			if a.ApplicationID == applicationID {
				a := a
				out = &a
				return
			}
		}
	})
	if out == nil {
		return nil, errNotFound
	}
	return out, nil
}

// GetByApplicationIDForUpdate relies on the store-wide tx mutex for locking.
func (r applicationRepo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*application.Application, error) {
	return r.GetByApplicationID(ctx, applicationID)
}

func (r applicationRepo) List(_ context.Context, status application.Status) ([]application.Application, error) {
	var out []application.Application
	r.s.read(func(t *tables) {
		for _, a := range t.apps {
			if status == "" || a.Status == status {
				out = append(out, a)
			}
		}
	})
	newestFirst(out,
		func(a application.Application) time.Time { return a.CreatedAt },
		func(a application.Application) uint64 { return a.ID })
	return out, nil
}

func (r applicationRepo) Save(_ context.Context, a *application.Application) error {
	return r.s.write("applications.save", func(t *tables) error {
		cur, ok := t.apps[a.ID]
		if !ok || cur.Version != a.Version {
			return application.ErrStaleWrite
		}
		a.Version++
		a.UpdatedAt = time.Now()
		t.apps[a.ID] = *a
		return nil
	})
}

type loanRepo struct{ s *Store }

func (r loanRepo) Create(_ context.Context, l *loan.Loan) error {
	return r.s.write("loans.create", func(t *tables) error {
		for _, existing := range t.loans {
			if existing.ApplicationID == l.ApplicationID {
				return ErrDuplicate
			}
		}
		l.ID = t.nextID()
		l.CreatedAt, l.UpdatedAt = time.Now(), time.Now()
		t.loans[l.ID] = *l
		return nil
	})
}

func (r loanRepo) Save(_ context.Context, l *loan.Loan) error {
	return r.s.write("loans.save", func(t *tables) error {
		cur, ok := t.loans[l.ID]
		if !ok || cur.Version != l.Version {
			return loan.ErrStaleWrite
		}
		cur.Balance = l.Balance
		cur.Status = l.Status
		cur.Version++
		cur.UpdatedAt = time.Now()
		t.loans[l.ID] = cur
		l.Version = cur.Version
		return nil
	})
}

func (r loanRepo) find(match func(loan.Loan) bool) (*loan.Loan, error) {
	var out *loan.Loan
	r.s.read(func(t *tables) {
		for _, l := range t.loans {
			if match(l) {
				l := l
				out = &l
				return
			}
		}
	})
	if out == nil {
		return nil, errNotFound
	}
	return out, nil
}

func (r loanRepo) GetByLoanID(_ context.Context, loanID string) (*loan.Loan, error) {
	return r.find(func(l loan.Loan) bool { return l.LoanID == loanID })
}

// GetByLoanIDForUpdate relies on the store-wide tx mutex for locking.
func (r loanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r loanRepo) GetByApplicationID(_ context.Context, applicationID uint64) (*loan.Loan, error) {
	return r.find(func(l loan.Loan) bool { return l.ApplicationID == applicationID })
}

func (r loanRepo) List(_ context.Context, status loan.Status) ([]loan.Loan, error) {
	var out []loan.Loan
	r.s.read(func(t *tables) {
		for _, l := range t.loans {
			if status == "" || l.Status == status {
				out = append(out, l)
			}
		}
	})
	newestFirst(out,
		func(l loan.Loan) time.Time { return l.CreatedAt },
		func(l loan.Loan) uint64 { return l.ID })
	return out, nil
}

func (r loanRepo) ListOverdue(_ context.Context, cutoff time.Time) ([]loan.Loan, error) {
	var out []loan.Loan
	r.s.read(func(t *tables) {
		for _, l := range t.loans {
			if l.IsOverdue(cutoff) {
				out = append(out, l)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type repaymentRepo struct{ s *Store }

func (r repaymentRepo) Create(_ context.Context, rp *repayment.Repayment) error {
	return r.s.write("repayments.create", func(t *tables) error {
		rp.ID = t.nextID()
		rp.CreatedAt = time.Now()
		t.repayments[rp.ID] = *rp
		return nil
	})
}

func (r repaymentRepo) ListByLoanID(_ context.Context, loanID uint64) ([]repayment.Repayment, error) {
	var out []repayment.Repayment
	r.s.read(func(t *tables) {
		for _, rp := range t.repayments {
			if rp.LoanID == loanID {
				out = append(out, rp)
			}
		}
	})
	newestFirst(out,
		func(rp repayment.Repayment) time.Time { return rp.PaymentDate },
		func(rp repayment.Repayment) uint64 { return rp.ID })
	return out, nil
}

func (r repaymentRepo) SumByLoanID(_ context.Context, loanID uint64) (decimal.Decimal, error) {
	total := decimal.Zero
	r.s.read(func(t *tables) {
		for _, rp := range t.repayments {
			if rp.LoanID == loanID {
				total = total.Add(rp.Amount)
			}
		}
	})
	return total, nil
}

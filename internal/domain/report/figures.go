package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Window is a half-open date range [From, To). Zero bounds are open.
type Window struct {
	From time.Time
	To   time.Time
}

// Flows are the money movements recorded inside a window.
type Flows struct {
	Applied   decimal.Decimal
	Disbursed decimal.Decimal
	Repaid    decimal.Decimal
}

// Portfolio is the current state of the book.
type Portfolio struct {
	ActiveLoans         int64
	TotalLoans          int64
	PendingApplications int64
	OutstandingBalance  decimal.Decimal
}

// ProductRank is a catalog product with the number of applications written
// against it.
type ProductRank struct {
	ProductID    string
	Name         string
	Applications int64
}

// RecentApplication is one line of the recent-activity feed.
type RecentApplication struct {
	ApplicationID   string
	ClientName      string
	ProductName     string
	AmountRequested decimal.Decimal
	Status          string
	ApplicationDate time.Time
	CreatedAt       time.Time
}

// Reader runs read-only aggregate queries; it never locks rows.
type Reader interface {
	Flows(ctx context.Context, w Window) (Flows, error)
	Portfolio(ctx context.Context) (Portfolio, error)
	// TopProducts ranks products by application count, most first, ties by
	// name. Products without applications rank with a zero count.
	TopProducts(ctx context.Context, n int) ([]ProductRank, error)
	// RecentApplications returns the n most recently created applications.
	RecentApplications(ctx context.Context, n int) ([]RecentApplication, error)
}

// FullName joins first and last name, skipping an empty part.
func FullName(first, last string) string {
	switch {
	case last == "":
		return first
	case first == "":
		return last
	}
	return first + " " + last
}

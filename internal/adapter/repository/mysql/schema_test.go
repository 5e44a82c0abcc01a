package mysql

import (
	"context"
	"fmt"
	"testing"
	"time"

	appDomain "microfinance-backoffice/internal/domain/application"
	clientDomain "microfinance-backoffice/internal/domain/client"
	loanDomain "microfinance-backoffice/internal/domain/loan"
	productDomain "microfinance-backoffice/internal/domain/product"
	"microfinance-backoffice/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM, no DECIMAL) ---
// Money columns are NUMERIC so comparisons like balance > 0 stay numeric.

type productSQLite struct {
	ID                 uint64    `gorm:"primaryKey;column:id"`
	ProductID          string    `gorm:"size:32;column:product_id;uniqueIndex"`
	Name               string    `gorm:"column:name"`
	Description        string    `gorm:"column:description"`
	InterestRate       float64   `gorm:"type:numeric;column:interest_rate"`
	DurationMonths     int       `gorm:"column:duration_months"`
	RepaymentFrequency string    `gorm:"type:text;column:repayment_frequency"`
	MaxAmount          float64   `gorm:"type:numeric;column:max_amount"`
	CreatedBy          string    `gorm:"column:created_by"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (productSQLite) TableName() string { return "loan_products" }

type clientSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	ClientID    string    `gorm:"size:32;column:client_id;uniqueIndex"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	ClientType  string    `gorm:"type:text;column:client_type"`
	NationalID  string    `gorm:"column:national_id;uniqueIndex"`
	PhoneNumber string    `gorm:"column:phone_number"`
	Status      string    `gorm:"type:text;column:status"`
	CreatedBy   string    `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (clientSQLite) TableName() string { return "clients" }

type applicationSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id"`
	ApplicationID   string     `gorm:"size:32;column:application_id;uniqueIndex"`
	ClientID        uint64     `gorm:"column:client_id"`
	ProductID       uint64     `gorm:"column:product_id"`
	AmountRequested float64    `gorm:"type:numeric;column:amount_requested"`
	Status          string     `gorm:"type:text;column:status"`
	ApprovedBy      string     `gorm:"column:approved_by"`
	Remarks         string     `gorm:"column:remarks"`
	ApplicationDate time.Time  `gorm:"column:application_date"`
	DecidedAt       *time.Time `gorm:"column:decided_at"`
	Version         uint64     `gorm:"column:version"`
	CreatedBy       string     `gorm:"column:created_by"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (applicationSQLite) TableName() string { return "loan_applications" }

type loanSQLite struct {
	ID               uint64    `gorm:"primaryKey;column:id"`
	LoanID           string    `gorm:"size:32;column:loan_id;uniqueIndex"`
	ApplicationID    uint64    `gorm:"column:application_id;uniqueIndex"`
	DisbursedAmount  float64   `gorm:"type:numeric;column:disbursed_amount"`
	InterestRate     float64   `gorm:"type:numeric;column:interest_rate"`
	DurationMonths   int       `gorm:"column:duration_months"`
	TotalPayable     float64   `gorm:"type:numeric;column:total_payable"`
	DisbursementDate time.Time `gorm:"column:disbursement_date"`
	DueDate          time.Time `gorm:"column:due_date"`
	Balance          float64   `gorm:"type:numeric;column:balance"`
	Status           string    `gorm:"type:text;column:status"` // ← no enum
	Version          uint64    `gorm:"column:version"`
	CreatedBy        string    `gorm:"column:created_by"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type repaymentSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	RepaymentID string    `gorm:"size:32;column:repayment_id;uniqueIndex"`
	LoanID      uint64    `gorm:"column:loan_id"`
	Amount      float64   `gorm:"type:numeric;column:amount"`
	PaymentDate time.Time `gorm:"column:payment_date"`
	Method      string    `gorm:"type:text;column:method"`
	CreatedBy   string    `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (repaymentSQLite) TableName() string { return "repayments" }

// openTestDB creates a private in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema. One connection keeps every query on the same database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", id.NewID32())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&productSQLite{}, &clientSQLite{}, &applicationSQLite{}, &loanSQLite{}, &repaymentSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// seedApproved stores a product, a client and an APPROVED application and
// returns the application.
func seedApproved(t *testing.T, db *gorm.DB, amount string) *appDomain.Application {
	t.Helper()
	ctx := context.Background()
	p := &productDomain.Product{
		ProductID: id.NewID32(), Name: "Biashara", InterestRate: dec("12"), DurationMonths: 12,
		RepaymentFrequency: productDomain.FrequencyMonthly, MaxAmount: dec("500000"),
	}
	if err := NewProductRepository(db).Create(ctx, p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	c := &clientDomain.Client{
		ClientID: id.NewID32(), FirstName: "Amina", ClientType: clientDomain.TypeIndividual,
		NationalID: id.NewID32()[:12], Status: clientDomain.StatusActive,
	}
	if err := NewClientRepository(db).Create(ctx, c); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	a := &appDomain.Application{
		ApplicationID: id.NewID32(), ClientID: c.ID, ProductID: p.ID,
		AmountRequested: dec(amount), Status: appDomain.StatusApproved,
		ApplicationDate: day(2024, 1, 10),
	}
	if err := NewApplicationRepository(db).Create(ctx, a); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return a
}

// seedLoan opens an ACTIVE loan against a freshly seeded application.
func seedLoan(t *testing.T, db *gorm.DB, principal string, disbursed time.Time) *loanDomain.Loan {
	t.Helper()
	a := seedApproved(t, db, principal)
	l := loanDomain.Open(a.ID, dec(principal), dec("12"), 12, disbursed)
	l.LoanID = id.NewID32()
	if err := NewLoanRepository(db).Create(context.Background(), l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}

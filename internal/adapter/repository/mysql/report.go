package mysql

import (
	"context"
	"time"

	appDomain "microfinance-backoffice/internal/domain/application"
	loanDomain "microfinance-backoffice/internal/domain/loan"
	"microfinance-backoffice/internal/domain/report"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository answers dashboard queries with plain aggregates. It takes
// no locks, so figures may trail in-flight transactions.
type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Flows(ctx context.Context, w report.Window) (report.Flows, error) {
	var out report.Flows
	var err error
	if out.Applied, err = r.sum(ctx, "loan_applications", "amount_requested", "application_date", w); err != nil {
		return report.Flows{}, err
	}
	if out.Disbursed, err = r.sum(ctx, "loans", "disbursed_amount", "disbursement_date", w); err != nil {
		return report.Flows{}, err
	}
	if out.Repaid, err = r.sum(ctx, "repayments", "amount", "payment_date", w); err != nil {
		return report.Flows{}, err
	}
	return out, nil
}

func (r *ReportRepository) Portfolio(ctx context.Context) (report.Portfolio, error) {
	var out report.Portfolio
	db := r.db.WithContext(ctx)

	if err := db.Model(&loanDomain.Loan{}).Count(&out.TotalLoans).Error; err != nil {
		return report.Portfolio{}, err
	}
	if err := db.Model(&loanDomain.Loan{}).
		Where("status = ?", loanDomain.StatusActive).
		Count(&out.ActiveLoans).Error; err != nil {
		return report.Portfolio{}, err
	}
	if err := db.Model(&appDomain.Application{}).
		Where("status = ?", appDomain.StatusPending).
		Count(&out.PendingApplications).Error; err != nil {
		return report.Portfolio{}, err
	}

	var outstanding decimal.Decimal
	row := db.Model(&loanDomain.Loan{}).
		Select("COALESCE(SUM(balance), 0)").
		Where("status = ?", loanDomain.StatusActive).
		Row()
	if err := row.Scan(&outstanding); err != nil {
		return report.Portfolio{}, err
	}
	out.OutstandingBalance = outstanding.Round(2)
	return out, nil
}

func (r *ReportRepository) TopProducts(ctx context.Context, n int) ([]report.ProductRank, error) {
	var out []report.ProductRank
	err := r.db.WithContext(ctx).
		Table("loan_products AS p").
		Select("p.product_id, p.name, COUNT(a.id) AS applications").
		Joins("LEFT JOIN loan_applications a ON a.product_id = p.id").
		Group("p.id, p.product_id, p.name").
		Order("applications DESC, p.name, p.id").
		Limit(n).
		Scan(&out).Error
	return out, err
}

type recentRow struct {
	ApplicationID   string
	FirstName       string
	LastName        string
	ProductName     string
	AmountRequested decimal.Decimal
	Status          string
	ApplicationDate time.Time
	CreatedAt       time.Time
}

func (r *ReportRepository) RecentApplications(ctx context.Context, n int) ([]report.RecentApplication, error) {
	var rows []recentRow
	err := r.db.WithContext(ctx).
		Table("loan_applications AS a").
		Select("a.application_id, c.first_name, c.last_name, p.name AS product_name, " +
			"a.amount_requested, a.status, a.application_date, a.created_at").
		Joins("JOIN clients c ON c.id = a.client_id").
		Joins("JOIN loan_products p ON p.id = a.product_id").
		Order("a.created_at DESC, a.id DESC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]report.RecentApplication, 0, len(rows))
	for _, row := range rows {
		out = append(out, report.RecentApplication{
			ApplicationID:   row.ApplicationID,
			ClientName:      report.FullName(row.FirstName, row.LastName),
			ProductName:     row.ProductName,
			AmountRequested: row.AmountRequested.Round(2),
			Status:          row.Status,
			ApplicationDate: row.ApplicationDate,
			CreatedAt:       row.CreatedAt,
		})
	}
	return out, nil
}

func (r *ReportRepository) sum(ctx context.Context, table, column, dateColumn string, w report.Window) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Table(table).Select("COALESCE(SUM(" + column + "), 0)")
	if !w.From.IsZero() {
		q = q.Where(dateColumn+" >= ?", w.From)
	}
	if !w.To.IsZero() {
		q = q.Where(dateColumn+" < ?", w.To)
	}
	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

package report

import (
	"time"

	domain "microfinance-backoffice/internal/domain/report"
)

type FlowsDTO struct {
	Applied   string `json:"applied"`
	Disbursed string `json:"disbursed"`
	Repaid    string `json:"repaid"`
}

// DashboardDTO mirrors the back-office landing page. Percent changes compare
// this calendar month with the previous one and are 0 when the previous
// month had nothing.
type DashboardDTO struct {
	AsOf                string   `json:"as_of"`
	Overall             FlowsDTO `json:"overall"`
	Today               FlowsDTO `json:"today"`
	ThisMonth           FlowsDTO `json:"this_month"`
	LastMonth           FlowsDTO `json:"last_month"`
	ChangePct           FlowsDTO `json:"month_over_month_pct"`
	ActiveLoans         int64    `json:"active_loans"`
	TotalLoans          int64    `json:"total_loans"`
	PendingApplications int64    `json:"pending_applications"`
	OutstandingBalance  string   `json:"outstanding_balance"`

	TopProducts        []ProductRankDTO       `json:"top_products"`
	RecentApplications []RecentApplicationDTO `json:"recent_applications"`
}

type ProductRankDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Applications int64  `json:"applications"`
}

type RecentApplicationDTO struct {
	ApplicationID   string `json:"application_id"`
	ClientName      string `json:"client_name"`
	ProductName     string `json:"product_name"`
	AmountRequested string `json:"amount_requested"`
	Status          string `json:"status"`
	ApplicationDate string `json:"application_date"` // YYYY-MM-DD
}

func flowsDTO(f domain.Flows) FlowsDTO {
	return FlowsDTO{
		Applied:   f.Applied.StringFixed(2),
		Disbursed: f.Disbursed.StringFixed(2),
		Repaid:    f.Repaid.StringFixed(2),
	}
}

func rankDTOs(rs []domain.ProductRank) []ProductRankDTO {
	out := make([]ProductRankDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, ProductRankDTO(r))
	}
	return out
}

func recentDTOs(as []domain.RecentApplication) []RecentApplicationDTO {
	out := make([]RecentApplicationDTO, 0, len(as))
	for _, a := range as {
		out = append(out, RecentApplicationDTO{
			ApplicationID:   a.ApplicationID,
			ClientName:      a.ClientName,
			ProductName:     a.ProductName,
			AmountRequested: a.AmountRequested.StringFixed(2),
			Status:          a.Status,
			ApplicationDate: a.ApplicationDate.Format(time.DateOnly),
		})
	}
	return out
}

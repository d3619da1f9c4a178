package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/pkg/currency"
)

// ManagerRevenueDTO revenue attributed to one manager.
type ManagerRevenueDTO struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Jobs  int             `json:"jobs"`
}

// DailyRevenueDTO one day of the 30-day chart. Date is YYYY-MM-DD.
type DailyRevenueDTO struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardResponse owner dashboard. It is also the cached snapshot.
type DashboardResponse struct {
	TotalJobs      int                          `json:"total_jobs"`
	TotalRevenue   decimal.Decimal              `json:"total_revenue"`
	TotalCollected decimal.Decimal              `json:"total_collected"`
	TotalConfirmed decimal.Decimal              `json:"total_confirmed"`
	TotalCredits   decimal.Decimal              `json:"total_credits"`
	AvgJobValue    decimal.Decimal              `json:"avg_job_value"`
	StatusCounts   map[string]int               `json:"status_counts"`
	ManagerRevenue map[string]ManagerRevenueDTO `json:"manager_revenue"`
	DailyRevenue   []DailyRevenueDTO            `json:"daily_revenue"`
	Currency       currency.Info                `json:"currency"`
	GeneratedAt    time.Time                    `json:"generated_at"`
}

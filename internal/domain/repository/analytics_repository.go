package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/domain/entity"
)

// ManagerRevenueRow estimated revenue accumulated per manager.
type ManagerRevenueRow struct {
	ManagerID   string
	ManagerName string
	Total       decimal.Decimal
	Jobs        int
}

// DailyRevenueRow estimated revenue of jobs created on Day (UTC date).
type DailyRevenueRow struct {
	Day   time.Time
	Total decimal.Decimal
}

// AnalyticsRepository read-only aggregates over one workshop.
// Sums are COALESCEd, so empty workshops yield zeros.
type AnalyticsRepository interface {
	JobTotals(ctx context.Context, workshopID string) (count int, revenue decimal.Decimal, err error)
	PaymentTotals(ctx context.Context, workshopID string) (collected, confirmed decimal.Decimal, err error)
	StatusCounts(ctx context.Context, workshopID string) (map[entity.JobStatus]int, error)
	ManagerRevenue(ctx context.Context, workshopID string) ([]ManagerRevenueRow, error)
	DailyRevenue(ctx context.Context, workshopID string, since time.Time) ([]DailyRevenueRow, error)
}

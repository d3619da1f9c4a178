package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only aggregates behind the owner dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// JobTotals job count and Σ estimated_amount.
func (r *AnalyticsRepo) JobTotals(ctx context.Context, workshopID string) (int, decimal.Decimal, error) {
	var count int
	var revenue decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(estimated_amount), 0)
		FROM jobs WHERE workshop_id = $1`, workshopID).Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("job totals: %w", err)
	}
	return count, revenue, nil
}

// PaymentTotals Σ amount over all payments and over confirmed ones.
func (r *AnalyticsRepo) PaymentTotals(ctx context.Context, workshopID string) (decimal.Decimal, decimal.Decimal, error) {
	var collected, confirmed decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.amount), 0),
		       COALESCE(SUM(p.amount) FILTER (WHERE p.confirmed_by_owner), 0)
		FROM payments p
		JOIN jobs j ON j.id = p.job_id
		WHERE j.workshop_id = $1`, workshopID).Scan(&collected, &confirmed)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("payment totals: %w", err)
	}
	return collected, confirmed, nil
}

func (r *AnalyticsRepo) StatusCounts(ctx context.Context, workshopID string) (map[entity.JobStatus]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT status, COUNT(*) FROM jobs WHERE workshop_id = $1 GROUP BY status`, workshopID)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()
	out := map[entity.JobStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out[entity.JobStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) ManagerRevenue(ctx context.Context, workshopID string) ([]repository.ManagerRevenueRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT j.manager_id, COALESCE(u.name, ''), COALESCE(SUM(j.estimated_amount), 0), COUNT(*)
		FROM jobs j
		LEFT JOIN users u ON u.id = j.manager_id
		WHERE j.workshop_id = $1
		GROUP BY j.manager_id, u.name
		ORDER BY j.manager_id`, workshopID)
	if err != nil {
		return nil, fmt.Errorf("manager revenue: %w", err)
	}
	defer rows.Close()
	var out []repository.ManagerRevenueRow
	for rows.Next() {
		var row repository.ManagerRevenueRow
		if err := rows.Scan(&row.ManagerID, &row.ManagerName, &row.Total, &row.Jobs); err != nil {
			return nil, fmt.Errorf("scan manager revenue: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DailyRevenue Σ estimated_amount per UTC creation day since the given instant.
func (r *AnalyticsRepo) DailyRevenue(ctx context.Context, workshopID string, since time.Time) ([]repository.DailyRevenueRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, COALESCE(SUM(estimated_amount), 0)
		FROM jobs
		WHERE workshop_id = $1 AND created_at >= $2
		GROUP BY day
		ORDER BY day`, workshopID, since)
	if err != nil {
		return nil, fmt.Errorf("daily revenue: %w", err)
	}
	defer rows.Close()
	var out []repository.DailyRevenueRow
	for rows.Next() {
		var row repository.DailyRevenueRow
		if err := rows.Scan(&row.Day, &row.Total); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		out = append(out, row)
	}
	return out, rows.Err()
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo aggregates over the in-memory rows.
type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) JobTotals(_ context.Context, workshopID string) (int, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count, revenue := 0, decimal.Zero
	for _, j := range r.s.jobs {
		if j.WorkshopID == workshopID {
			count++
			revenue = revenue.Add(j.EstimatedAmount)
		}
	}
	return count, revenue, nil
}

func (r *AnalyticsRepo) PaymentTotals(_ context.Context, workshopID string) (decimal.Decimal, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	collected, confirmed := decimal.Zero, decimal.Zero
	for _, p := range r.s.payments {
		if r.s.jobs[p.JobID].WorkshopID != workshopID {
			continue
		}
		collected = collected.Add(p.Amount)
		if p.ConfirmedByOwner {
			confirmed = confirmed.Add(p.Amount)
		}
	}
	return collected, confirmed, nil
}

func (r *AnalyticsRepo) StatusCounts(_ context.Context, workshopID string) (map[entity.JobStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[entity.JobStatus]int{}
	for _, j := range r.s.jobs {
		if j.WorkshopID == workshopID {
			out[j.Status]++
		}
	}
	return out, nil
}

func (r *AnalyticsRepo) ManagerRevenue(_ context.Context, workshopID string) ([]repository.ManagerRevenueRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byManager := map[string]*repository.ManagerRevenueRow{}
	for _, j := range r.s.jobs {
		if j.WorkshopID != workshopID {
			continue
		}
		row, ok := byManager[j.ManagerID]
		if !ok {
			row = &repository.ManagerRevenueRow{ManagerID: j.ManagerID, ManagerName: r.s.users[j.ManagerID].Name}
			byManager[j.ManagerID] = row
		}
		row.Total = row.Total.Add(j.EstimatedAmount)
		row.Jobs++
	}
	out := make([]repository.ManagerRevenueRow, 0, len(byManager))
	for _, row := range byManager {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ManagerID < out[k].ManagerID })
	return out, nil
}

func (r *AnalyticsRepo) DailyRevenue(_ context.Context, workshopID string, since time.Time) ([]repository.DailyRevenueRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byDay := map[time.Time]decimal.Decimal{}
	for _, j := range r.s.jobs {
		if j.WorkshopID != workshopID || j.CreatedAt.Before(since) {
			continue
		}
		day := j.CreatedAt.UTC().Truncate(24 * time.Hour)
		byDay[day] = byDay[day].Add(j.EstimatedAmount)
	}
	out := make([]repository.DailyRevenueRow, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, repository.DailyRevenueRow{Day: day, Total: total})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Day.Before(out[k].Day) })
	return out, nil
}

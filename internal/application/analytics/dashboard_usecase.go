// Package analytics holds the owner reports: the revenue dashboard and the
// jobs spreadsheet export.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/domain/repository"
	"github.com/jhoicas/revops-api/pkg/currency"
	"github.com/jhoicas/revops-api/pkg/logger"
)

// DailyWindow number of days in the revenue chart, today included.
const DailyWindow = 30

// DashboardUseCase computes, caches and refreshes workshop dashboards.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	workshops     repository.WorkshopRepository
	cache         DashboardCache // nil disables caching
	log           *logger.Logger
	now           func() time.Time
}

// NewDashboardUseCase builds the use case. cache and log may be nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, workshops repository.WorkshopRepository, cache DashboardCache, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, workshops: workshops, cache: cache, log: log, now: time.Now}
}

// Dashboard returns the owner's dashboard, from cache when fresh. An owner
// without a workshop gets a zero-valued dashboard.
func (uc *DashboardUseCase) Dashboard(ctx context.Context, actor auth.SessionUser) (*dto.DashboardResponse, error) {
	if actor.Role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if actor.WorkshopID == "" {
		return uc.empty(currency.ByCode("")), nil
	}
	if uc.cache != nil {
		d, ok, err := uc.cache.Get(ctx, actor.WorkshopID)
		if err != nil {
			uc.log.Warn().Err(err).Str("workshop_id", actor.WorkshopID).Msg("dashboard cache read failed")
		} else if ok {
			return d, nil
		}
	}
	d, err := uc.Compute(ctx, actor.WorkshopID)
	if err != nil {
		return nil, err
	}
	uc.store(ctx, actor.WorkshopID, d)
	return d, nil
}

// Compute builds the dashboard of a workshop from the repository.
//
// Six calls in parallel:
//  1. JobTotals       → total_jobs, total_revenue
//  2. PaymentTotals   → total_collected, total_confirmed
//  3. StatusCounts    → status_counts
//  4. ManagerRevenue  → manager_revenue
//  5. DailyRevenue    → daily_revenue
//  6. Workshop lookup → currency
func (uc *DashboardUseCase) Compute(ctx context.Context, workshopID string) (*dto.DashboardResponse, error) {
	now := uc.now().UTC()
	today := now.Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(DailyWindow - 1))

	type totalsResult struct {
		count   int
		revenue decimal.Decimal
		err     error
	}
	type paymentsResult struct {
		collected, confirmed decimal.Decimal
		err                  error
	}
	type statusResult struct {
		counts map[entity.JobStatus]int
		err    error
	}
	type managersResult struct {
		rows []repository.ManagerRevenueRow
		err  error
	}
	type dailyResult struct {
		rows []repository.DailyRevenueRow
		err  error
	}
	type workshopResult struct {
		w   *entity.Workshop
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	paymentsCh := make(chan paymentsResult, 1)
	statusCh := make(chan statusResult, 1)
	managersCh := make(chan managersResult, 1)
	dailyCh := make(chan dailyResult, 1)
	workshopCh := make(chan workshopResult, 1)

	go func() {
		count, revenue, err := uc.analyticsRepo.JobTotals(ctx, workshopID)
		totalsCh <- totalsResult{count, revenue, err}
	}()
	go func() {
		collected, confirmed, err := uc.analyticsRepo.PaymentTotals(ctx, workshopID)
		paymentsCh <- paymentsResult{collected, confirmed, err}
	}()
	go func() {
		counts, err := uc.analyticsRepo.StatusCounts(ctx, workshopID)
		statusCh <- statusResult{counts, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ManagerRevenue(ctx, workshopID)
		managersCh <- managersResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.DailyRevenue(ctx, workshopID, since)
		dailyCh <- dailyResult{rows, err}
	}()
	go func() {
		w, err := uc.workshops.GetByID(ctx, workshopID)
		workshopCh <- workshopResult{w, err}
	}()

	totals := <-totalsCh
	pays := <-paymentsCh
	status := <-statusCh
	managers := <-managersCh
	daily := <-dailyCh
	ws := <-workshopCh

	switch {
	case totals.err != nil:
		return nil, fmt.Errorf("dashboard: job totals: %w", totals.err)
	case pays.err != nil:
		return nil, fmt.Errorf("dashboard: payment totals: %w", pays.err)
	case status.err != nil:
		return nil, fmt.Errorf("dashboard: status counts: %w", status.err)
	case managers.err != nil:
		return nil, fmt.Errorf("dashboard: manager revenue: %w", managers.err)
	case daily.err != nil:
		return nil, fmt.Errorf("dashboard: daily revenue: %w", daily.err)
	case ws.err != nil:
		return nil, fmt.Errorf("dashboard: workshop: %w", ws.err)
	}

	code := ""
	if ws.w != nil {
		code = ws.w.CurrencyCode
	}
	d := uc.empty(currency.ByCode(code))
	d.TotalJobs = totals.count
	d.TotalRevenue = totals.revenue
	d.TotalCollected = pays.collected
	d.TotalConfirmed = pays.confirmed
	if credits := totals.revenue.Sub(pays.collected); credits.IsPositive() {
		d.TotalCredits = credits
	}
	if totals.count > 0 {
		d.AvgJobValue = totals.revenue.Div(decimal.NewFromInt(int64(totals.count))).Round(2)
	}
	for st, n := range status.counts {
		d.StatusCounts[string(st)] = n
	}
	for _, row := range managers.rows {
		d.ManagerRevenue[row.ManagerID] = dto.ManagerRevenueDTO{Name: row.ManagerName, Total: row.Total, Jobs: row.Jobs}
	}
	byDay := make(map[string]decimal.Decimal, len(daily.rows))
	for _, row := range daily.rows {
		byDay[row.Day.UTC().Format(time.DateOnly)] = row.Total
	}
	for i := range d.DailyRevenue {
		if v, ok := byDay[d.DailyRevenue[i].Date]; ok {
			d.DailyRevenue[i].Revenue = v
		}
	}
	return d, nil
}

// Invalidate drops the cached dashboard; failures are logged.
func (uc *DashboardUseCase) Invalidate(ctx context.Context, workshopID string) {
	if uc.cache == nil || workshopID == "" {
		return
	}
	if err := uc.cache.Delete(ctx, workshopID); err != nil {
		uc.log.Warn().Err(err).Str("workshop_id", workshopID).Msg("dashboard cache invalidation failed")
	}
}

// RefreshCached recomputes every cached dashboard and returns how many were refreshed.
func (uc *DashboardUseCase) RefreshCached(ctx context.Context) (int, error) {
	if uc.cache == nil {
		return 0, nil
	}
	ids, err := uc.cache.Workshops(ctx)
	if err != nil {
		return 0, fmt.Errorf("list cached dashboards: %w", err)
	}
	refreshed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		d, err := uc.Compute(ctx, id)
		if err != nil {
			uc.log.Error().Err(err).Str("workshop_id", id).Msg("dashboard refresh failed")
			continue
		}
		uc.store(ctx, id, d)
		refreshed++
	}
	return refreshed, nil
}

func (uc *DashboardUseCase) store(ctx context.Context, workshopID string, d *dto.DashboardResponse) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, workshopID, d); err != nil {
		uc.log.Warn().Err(err).Str("workshop_id", workshopID).Msg("dashboard cache write failed")
	}
}

// empty is a zero dashboard with every status and every day of the window present.
func (uc *DashboardUseCase) empty(cur currency.Info) *dto.DashboardResponse {
	now := uc.now().UTC()
	today := now.Truncate(24 * time.Hour)
	d := &dto.DashboardResponse{
		TotalRevenue:   decimal.Zero,
		TotalCollected: decimal.Zero,
		TotalConfirmed: decimal.Zero,
		TotalCredits:   decimal.Zero,
		AvgJobValue:    decimal.Zero,
		StatusCounts:   make(map[string]int, len(entity.JobStatuses)),
		ManagerRevenue: map[string]dto.ManagerRevenueDTO{},
		DailyRevenue:   make([]dto.DailyRevenueDTO, DailyWindow),
		Currency:       cur,
		GeneratedAt:    now,
	}
	for _, st := range entity.JobStatuses {
		d.StatusCounts[string(st)] = 0
	}
	for i := range d.DailyRevenue {
		day := today.AddDate(0, 0, i-(DailyWindow-1))
		d.DailyRevenue[i] = dto.DailyRevenueDTO{Date: day.Format(time.DateOnly), Revenue: decimal.Zero}
	}
	return d
}

package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revops-api/internal/application/analytics"
	"github.com/jhoicas/revops-api/internal/application/auth"
	"github.com/jhoicas/revops-api/internal/application/dto"
	"github.com/jhoicas/revops-api/internal/domain"
	"github.com/jhoicas/revops-api/internal/domain/entity"
	"github.com/jhoicas/revops-api/internal/infrastructure/memory"
)

var owner = auth.SessionUser{ID: "owner-1", Role: entity.RoleOwner, WorkshopID: "ws-1"}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*dto.DashboardResponse
	getErr  error
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]*dto.DashboardResponse{}} }

func (c *mapCache) Get(_ context.Context, id string) (*dto.DashboardResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	d, ok := c.entries[id]
	return d, ok, nil
}

func (c *mapCache) Set(_ context.Context, id string, d *dto.DashboardResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = d
	return nil
}

func (c *mapCache) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	return nil
}

func (c *mapCache) Workshops(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()
	require.NoError(t, store.Workshops().Create(ctx, &entity.Workshop{ID: "ws-1", OwnerID: owner.ID, Name: "G", CurrencyCode: "USD"}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "m-1", Name: "Manu", Email: "m1@g.test", Role: entity.RoleManager}))
	jobs := []entity.Job{
		{ID: "j-1", WorkshopID: "ws-1", ManagerID: "m-1", EstimatedAmount: decimal.NewFromInt(5000), Status: entity.JobPending, CreatedAt: now},
		{ID: "j-2", WorkshopID: "ws-1", ManagerID: "m-1", EstimatedAmount: decimal.NewFromInt(1000), Status: entity.JobCompleted, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "j-old", WorkshopID: "ws-1", ManagerID: "m-1", EstimatedAmount: decimal.NewFromInt(3000), Status: entity.JobClosed, CreatedAt: now.AddDate(0, 0, -90)},
		{ID: "j-other", WorkshopID: "ws-2", ManagerID: "m-9", EstimatedAmount: decimal.NewFromInt(99999), Status: entity.JobPending, CreatedAt: now},
	}
	for i := range jobs {
		require.NoError(t, store.Jobs().Create(ctx, &jobs[i]))
	}
	require.NoError(t, store.Payments().Create(ctx, &entity.Payment{ID: "p-1", JobID: "j-1", Amount: decimal.NewFromInt(2000), PaymentDate: now}))
	require.NoError(t, store.Payments().Create(ctx, &entity.Payment{ID: "p-2", JobID: "j-old", Amount: decimal.NewFromInt(3000), ConfirmedByOwner: true, PaymentDate: now}))
	return store
}

func TestDashboard_Aggregates(t *testing.T) {
	store := seed(t)
	uc := analytics.NewDashboardUseCase(store.Analytics(), store.Workshops(), nil, nil)

	d, err := uc.Dashboard(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 3, d.TotalJobs)
	assert.True(t, d.TotalRevenue.Equal(decimal.NewFromInt(9000)))
	assert.True(t, d.TotalCollected.Equal(decimal.NewFromInt(5000)))
	assert.True(t, d.TotalConfirmed.Equal(decimal.NewFromInt(3000)))
	assert.True(t, d.TotalCredits.Equal(decimal.NewFromInt(4000)))
	assert.True(t, d.AvgJobValue.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 1, d.StatusCounts["pending"])
	assert.Equal(t, 0, d.StatusCounts["delivered"], "every status is present")
	assert.Equal(t, 3, d.ManagerRevenue["m-1"].Jobs)
	assert.Equal(t, "Manu", d.ManagerRevenue["m-1"].Name)
	assert.Equal(t, "USD", d.Currency.Code)

	require.Len(t, d.DailyRevenue, analytics.DailyWindow)
	last := d.DailyRevenue[analytics.DailyWindow-1]
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), last.Date)
	assert.True(t, last.Revenue.Equal(decimal.NewFromInt(5000)))
	total := decimal.Zero
	for _, day := range d.DailyRevenue {
		total = total.Add(day.Revenue)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(6000)), "jobs older than the window are not charted")
}

func TestDashboard_NoWorkshopIsZero(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewDashboardUseCase(store.Analytics(), store.Workshops(), nil, nil)

	d, err := uc.Dashboard(context.Background(), auth.SessionUser{ID: "o", Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Zero(t, d.TotalJobs)
	assert.True(t, d.TotalRevenue.IsZero())
	assert.Len(t, d.DailyRevenue, analytics.DailyWindow)
	assert.Equal(t, "INR", d.Currency.Code)

	_, err = uc.Dashboard(context.Background(), auth.SessionUser{ID: "m", Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDashboard_CacheHitAndInvalidate(t *testing.T) {
	store := seed(t)
	cache := newMapCache()
	uc := analytics.NewDashboardUseCase(store.Analytics(), store.Workshops(), cache, nil)
	ctx := context.Background()

	first, err := uc.Dashboard(ctx, owner)
	require.NoError(t, err)
	require.Contains(t, cache.entries, "ws-1")

	require.NoError(t, store.Payments().Create(ctx, &entity.Payment{ID: "p-3", JobID: "j-2", Amount: decimal.NewFromInt(1000), PaymentDate: time.Now()}))
	cached, err := uc.Dashboard(ctx, owner)
	require.NoError(t, err)
	assert.Same(t, first, cached, "served from cache until invalidated")

	uc.Invalidate(ctx, "ws-1")
	fresh, err := uc.Dashboard(ctx, owner)
	require.NoError(t, err)
	assert.True(t, fresh.TotalCollected.Equal(decimal.NewFromInt(6000)))
}

func TestDashboard_CacheErrorFallsBack(t *testing.T) {
	store := seed(t)
	cache := newMapCache()
	cache.getErr = errors.New("redis down")
	uc := analytics.NewDashboardUseCase(store.Analytics(), store.Workshops(), cache, nil)

	d, err := uc.Dashboard(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalJobs)
}

func TestRefreshCached(t *testing.T) {
	store := seed(t)
	cache := newMapCache()
	uc := analytics.NewDashboardUseCase(store.Analytics(), store.Workshops(), cache, nil)
	ctx := context.Background()

	n, err := uc.RefreshCached(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = uc.Dashboard(ctx, owner)
	require.NoError(t, err)
	n, err = uc.RefreshCached(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	noCache := analytics.NewDashboardUseCase(store.Analytics(), store.Workshops(), nil, nil)
	n, err = noCache.RefreshCached(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

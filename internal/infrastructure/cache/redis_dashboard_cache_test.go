package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/revops-api/internal/application/dto"
)

func TestDashboardKey(t *testing.T) {
	assert.Equal(t, "revops:dashboard:ws-1", dashboardKey("ws-1"))
}

func TestNewRedisClient_StripsScheme(t *testing.T) {
	c := NewRedisClient("redis://cache:6379", "", 0)
	defer c.Close()
	assert.Equal(t, "cache:6379", c.Options().Addr)
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisDashboardCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client := NewRedisClient(addr, "", 15)
	defer client.Close()
	c := NewRedisDashboardCache(client, time.Minute)
	require.NoError(t, c.Ping(ctx))

	ws := "test-" + time.Now().Format("150405.000")
	_, ok, err := c.Get(ctx, ws)
	require.NoError(t, err)
	assert.False(t, ok)

	in := &dto.DashboardResponse{TotalJobs: 3, TotalRevenue: decimal.NewFromInt(9000)}
	require.NoError(t, c.Set(ctx, ws, in))

	out, ok, err := c.Get(ctx, ws)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, out.TotalJobs)
	assert.True(t, out.TotalRevenue.Equal(in.TotalRevenue))

	ids, err := c.Workshops(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, ws)

	require.NoError(t, c.Delete(ctx, ws))
	_, ok, err = c.Get(ctx, ws)
	require.NoError(t, err)
	assert.False(t, ok)
}

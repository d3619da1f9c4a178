// Package cache keeps computed owner dashboards in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/revops-api/internal/application/analytics"
	"github.com/jhoicas/revops-api/internal/application/dto"
)

const (
	keyPrefix    = "revops:dashboard:"
	workshopsKey = keyPrefix + "workshops"
)

// RedisDashboardCache implements analytics.DashboardCache. Snapshots are JSON
// values with a TTL; a set tracks which workshops have one.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ analytics.DashboardCache = (*RedisDashboardCache)(nil)

// NewRedisClient builds the client; addr may carry a redis:// or rediss:// scheme.
func NewRedisClient(addr, password string, db int) *redis.Client {
	addr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisDashboardCache wraps client. A non-positive ttl keeps entries until invalidated.
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) *RedisDashboardCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisDashboardCache{client: client, ttl: ttl}
}

func dashboardKey(workshopID string) string {
	return keyPrefix + workshopID
}

// Get reports a miss as ok=false with a nil error.
func (c *RedisDashboardCache) Get(ctx context.Context, workshopID string) (*dto.DashboardResponse, bool, error) {
	data, err := c.client.Get(ctx, dashboardKey(workshopID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get dashboard: %w", err)
	}
	var d dto.DashboardResponse
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false, fmt.Errorf("decode dashboard: %w", err)
	}
	return &d, true, nil
}

func (c *RedisDashboardCache) Set(ctx context.Context, workshopID string, d *dto.DashboardResponse) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	_, err = c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, dashboardKey(workshopID), data, c.ttl)
		p.SAdd(ctx, workshopsKey, workshopID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set dashboard: %w", err)
	}
	return nil
}

func (c *RedisDashboardCache) Delete(ctx context.Context, workshopID string) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, dashboardKey(workshopID))
		p.SRem(ctx, workshopsKey, workshopID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete dashboard: %w", err)
	}
	return nil
}

// Workshops lists tracked workshops, dropping the ones whose snapshot expired.
func (c *RedisDashboardCache) Workshops(ctx context.Context) ([]string, error) {
	ids, err := c.client.SMembers(ctx, workshopsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list dashboards: %w", err)
	}
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := c.client.Exists(ctx, dashboardKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("redis exists dashboard: %w", err)
		}
		if n == 0 {
			_ = c.client.SRem(ctx, workshopsKey, id).Err()
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// Ping checks connectivity.
func (c *RedisDashboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

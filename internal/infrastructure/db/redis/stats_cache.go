package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plataforma/auth-backend/internal/core/ports"
)

const (
	statsKey = "dashboard:stats"
	statsTTL = 30 * time.Second
)

// StatsCache caches the dashboard aggregate in Redis for a short window so
// repeated dashboard loads do not hit the user store every time.
type StatsCache struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

// Get returns the cached aggregate, or (nil, nil) when the key is absent.
func (c *StatsCache) Get(ctx context.Context) (*ports.DashboardStats, error) {
	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}

	var stats ports.DashboardStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// Set stores the aggregate, expiring after statsTTL.
func (c *StatsCache) Set(ctx context.Context, stats *ports.DashboardStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, payload, statsTTL).Err()
}

package ports

import "context"

// StatsCache is a short-lived cache for the dashboard aggregate.
// Get returns (nil, nil) on a cache miss.
type StatsCache interface {
	Get(ctx context.Context) (*DashboardStats, error)
	Set(ctx context.Context, stats *DashboardStats) error
}

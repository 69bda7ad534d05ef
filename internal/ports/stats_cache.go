package ports

import (
	"context"
	"time"
)

// Port: short-lived cache for computed dashboard stats. A miss is
// (nil, false, nil); cache errors are treated as misses by callers.
type StatsCache interface {
	GetStats(ctx context.Context, key string) (map[string]any, bool, error)
	PutStats(ctx context.Context, key string, stats map[string]any, ttl time.Duration) error
}

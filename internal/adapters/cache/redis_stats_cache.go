// Package cache provides short-lived caches in front of expensive
// aggregate queries.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"waste-ops-service/internal/platform/obs"
	"waste-ops-service/internal/ports"
)

// RedisStatsCache stores computed dashboard stats as JSON under a
// role+user key with a TTL. A missing key is a miss, not an error.
type RedisStatsCache struct {
	Client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{Client: client}
}

func (c *RedisStatsCache) GetStats(ctx context.Context, key string) (_ map[string]any, _ bool, err error) {
	defer obs.Time(ctx, "stats.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("stats cache: client is nil")
	}

	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get stats cache: key=%q: %w", key, err)
	}

	var stats map[string]any
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("get stats cache: decode key=%q: %w", key, err)
	}
	return stats, true, nil
}

func (c *RedisStatsCache) PutStats(ctx context.Context, key string, stats map[string]any, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "stats.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("stats cache: client is nil")
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("put stats cache: encode key=%q: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("put stats cache: key=%q: %w", key, err)
	}
	return nil
}

var _ ports.StatsCache = (*RedisStatsCache)(nil)

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisStatsCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStatsCache(client), srv
}

func TestRedisStatsCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	stats := map[string]any{
		"totalCollections": float64(42),
		"activeRoutes":     float64(3),
	}

	if err := c.PutStats(ctx, "stats:ADMIN:1", stats, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.GetStats(ctx, "stats:ADMIN:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got["totalCollections"] != float64(42) {
		t.Errorf("totalCollections = %v, want 42", got["totalCollections"])
	}
	if got["activeRoutes"] != float64(3) {
		t.Errorf("activeRoutes = %v, want 3", got["activeRoutes"])
	}
}

func TestRedisStatsCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok, err := c.GetStats(context.Background(), "stats:EMPLOYEE:99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisStatsCacheExpiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	if err := c.PutStats(ctx, "stats:CITIZEN:7", map[string]any{"myComplaints": float64(1)}, 30*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	srv.FastForward(31 * time.Second)

	_, ok, err := c.GetStats(ctx, "stats:CITIZEN:7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected expired entry to miss")
	}
}

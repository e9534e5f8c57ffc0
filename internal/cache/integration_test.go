package cache

import (
	"context"
	"testing"
	"time"

	"github.com/cdmstr-kev/news-explorer-backend/internal/testutil"
)

// setupCache connects to the test Redis and flushes the throttle keys.
// Tests are skipped unless TEST_REDIS_URL is set.
func setupCache(t *testing.T) *Cache {
	t.Helper()
	redisURL := testutil.RequireEnv(t, "TEST_REDIS_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})

	if err := c.client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return c
}

func TestCheckRateLimit_BurstThenThrottle(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	const burst = 5
	for i := 0; i < burst; i++ {
		result, err := c.CheckRateLimit(ctx, "203.0.113.7", 1, burst)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d within burst was throttled", i)
		}
	}

	result, err := c.CheckRateLimit(ctx, "203.0.113.7", 1, burst)
	if err != nil {
		t.Fatalf("check over burst: %v", err)
	}
	if result.Allowed {
		t.Error("request over burst must be throttled")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected a positive retry-after, got %v", result.RetryAfter)
	}
}

func TestCheckRateLimit_PerClientBuckets(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	// Drain one client's bucket completely.
	for i := 0; i < 3; i++ {
		if _, err := c.CheckRateLimit(ctx, "198.51.100.1", 1, 2); err != nil {
			t.Fatalf("drain: %v", err)
		}
	}

	// Another client is unaffected.
	result, err := c.CheckRateLimit(ctx, "198.51.100.2", 1, 2)
	if err != nil {
		t.Fatalf("other client: %v", err)
	}
	if !result.Allowed {
		t.Error("buckets must be independent per client")
	}
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/msomdec/rms-content/internal/service"
)

func newTestBucket(t *testing.T, rate, capacity float64) *service.TokenBucket {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return service.NewTokenBucket(ctx, rate, capacity)
}

func TestTokenBucket_AllowsUpToCapacity(t *testing.T) {
	tb := newTestBucket(t, 0, 3)

	for i := 0; i < 3; i++ {
		if !tb.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if tb.Allow("10.0.0.1") {
		t.Fatal("4th request should be denied")
	}
}

func TestTokenBucket_DifferentKeysAreIndependent(t *testing.T) {
	tb := newTestBucket(t, 0, 1)

	if !tb.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if tb.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}
	if !tb.Allow("ip-b") {
		t.Fatal("ip-b has its own bucket")
	}
}

func TestTokenBucket_Refills(t *testing.T) {
	tb := newTestBucket(t, 1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	service.SetClock(tb, func() time.Time { return now })

	if !tb.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if tb.Allow("k") {
		t.Fatal("second request should be denied")
	}

	now = now.Add(1500 * time.Millisecond)
	if !tb.Allow("k") {
		t.Fatal("request after refill should be allowed")
	}
}

func TestTokenBucket_SweepDropsIdleKeys(t *testing.T) {
	tb := newTestBucket(t, 1, 5)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	service.SetClock(tb, func() time.Time { return now })

	tb.Allow("old")
	now = now.Add(11 * time.Minute)
	tb.Allow("fresh")

	tb.Sweep()
	if got := tb.Len(); got != 1 {
		t.Fatalf("expected 1 tracked key after sweep, got %d", got)
	}
}

package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/mechanic-shop/internal/config"
)

type fakeStore struct {
	counts  map[string]int64
	expires map[string]time.Duration
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (s *fakeStore) Incr(_ context.Context, key string) (int64, error) {
	if s.failing {
		return 0, errors.New("connection refused")
	}
	s.counts[key]++
	return s.counts[key], nil
}

func (s *fakeStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	if s.failing {
		return errors.New("connection refused")
	}
	s.expires[key] = ttl
	return nil
}

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:         true,
		LoginPerMinute:  5,
		CreatePerMinute: 10,
		UpdatePerMinute: 20,
		DeletePerMinute: 5,
		AssignPerMinute: 30,
	}
}

func TestAllowEnforcesClassBudgets(t *testing.T) {
	tests := []struct {
		class Class
		limit int
	}{
		{ClassLogin, 5},
		{ClassCreate, 10},
		{ClassUpdate, 20},
		{ClassDelete, 5},
		{ClassAssign, 30},
	}
	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			store := newFakeStore()
			limiter := NewLimiterWithStore(store, testConfig(), zap.NewNop(), nil)
			ctx := context.Background()

			for i := 0; i < tt.limit; i++ {
				allowed, err := limiter.Allow(ctx, "10.0.0.1", tt.class)
				if err != nil {
					t.Fatalf("Allow %d: %v", i, err)
				}
				if !allowed {
					t.Fatalf("request %d rejected under the limit of %d", i+1, tt.limit)
				}
			}
			allowed, err := limiter.Allow(ctx, "10.0.0.1", tt.class)
			if err != nil {
				t.Fatalf("Allow over limit: %v", err)
			}
			if allowed {
				t.Fatalf("request %d allowed over the limit of %d", tt.limit+1, tt.limit)
			}
		})
	}
}

func TestAllowWindowKeyIsolatesClientAndClass(t *testing.T) {
	store := newFakeStore()
	limiter := NewLimiterWithStore(store, testConfig(), zap.NewNop(), nil)
	ctx := context.Background()

	// Exhaust login for one client; another client and another class on
	// the same client keep their own budgets.
	for i := 0; i < 6; i++ {
		limiter.Allow(ctx, "10.0.0.1", ClassLogin)
	}
	if allowed, _ := limiter.Allow(ctx, "10.0.0.1", ClassLogin); allowed {
		t.Fatal("exhausted client/class still allowed")
	}
	if allowed, _ := limiter.Allow(ctx, "10.0.0.2", ClassLogin); !allowed {
		t.Fatal("other client blocked by a foreign window")
	}
	if allowed, _ := limiter.Allow(ctx, "10.0.0.1", ClassCreate); !allowed {
		t.Fatal("other class blocked by a foreign window")
	}

	if _, ok := store.counts["ratelimit:10.0.0.1:login"]; !ok {
		t.Fatalf("unexpected key layout: %v", store.counts)
	}
}

func TestAllowSetsWindowExpiryOnFirstHit(t *testing.T) {
	store := newFakeStore()
	limiter := NewLimiterWithStore(store, testConfig(), zap.NewNop(), nil)
	ctx := context.Background()

	limiter.Allow(ctx, "10.0.0.1", ClassCreate)
	limiter.Allow(ctx, "10.0.0.1", ClassCreate)

	ttl, ok := store.expires["ratelimit:10.0.0.1:create"]
	if !ok {
		t.Fatalf("no expiry set: %v", store.expires)
	}
	if ttl != time.Minute {
		t.Fatalf("expected one-minute window, got %v", ttl)
	}
}

func TestAllowFailsOpenOnStoreError(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	limiter := NewLimiterWithStore(store, testConfig(), zap.NewNop(), nil)

	allowed, err := limiter.Allow(context.Background(), "10.0.0.1", ClassLogin)
	if err == nil {
		t.Fatal("expected the store error to surface")
	}
	if !allowed {
		t.Fatal("store failure must not reject requests")
	}
}

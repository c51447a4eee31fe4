package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/mechanic-shop/internal/config"
	"github.com/spec-kit/mechanic-shop/internal/observability"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// Class groups routes that share a per-client budget.
type Class string

const (
	ClassLogin  Class = "login"
	ClassCreate Class = "create"
	ClassUpdate Class = "update"
	ClassDelete Class = "delete"
	ClassAssign Class = "assign"
)

// CounterStore is the slice of Redis the limiter needs.
type CounterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *redisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Expire(ctx, key, ttl).Err()
}

// Limiter enforces fixed one-minute windows per client address and route
// class, counted in Redis so every instance shares the budget.
type Limiter struct {
	store   CounterStore
	cfg     config.RateLimitConfig
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewLimiter builds a Redis-backed limiter.
func NewLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger, metrics *observability.Metrics) *Limiter {
	return NewLimiterWithStore(&redisStore{client: client}, cfg, logger, metrics)
}

// NewLimiterWithStore builds a limiter over an arbitrary counter store.
func NewLimiterWithStore(store CounterStore, cfg config.RateLimitConfig, logger *zap.Logger, metrics *observability.Metrics) *Limiter {
	return &Limiter{store: store, cfg: cfg, logger: logger, metrics: metrics}
}

// Allow counts one request and reports whether it fits the window. A store
// error fails open.
func (l *Limiter) Allow(ctx context.Context, clientIP string, class Class) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", clientIP, class)
	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := l.store.Expire(ctx, key, time.Minute); err != nil {
			return true, err
		}
	}
	return count <= int64(l.limitFor(class)), nil
}

// Middleware rejects requests over the class budget with 429.
func (l *Limiter) Middleware(class Class) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.cfg.Enabled {
			return c.Next()
		}
		allowed, err := l.Allow(c.UserContext(), c.IP(), class)
		if err != nil {
			l.logger.Warn("rate limiter unavailable, allowing request",
				zap.String("class", string(class)), zap.Error(err))
			return c.Next()
		}
		if !allowed {
			l.metrics.RecordRateLimited()
			return util.NewRateLimited("rate limit exceeded, try again later")
		}
		return c.Next()
	}
}

func (l *Limiter) limitFor(class Class) int {
	switch class {
	case ClassLogin:
		return l.cfg.LoginPerMinute
	case ClassCreate:
		return l.cfg.CreatePerMinute
	case ClassUpdate:
		return l.cfg.UpdatePerMinute
	case ClassDelete:
		return l.cfg.DeletePerMinute
	case ClassAssign:
		return l.cfg.AssignPerMinute
	}
	return l.cfg.CreatePerMinute
}

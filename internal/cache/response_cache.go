package cache

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/mechanic-shop/internal/observability"
)

// ResponseCache stores rendered GET responses in Redis, keyed by the full
// request URL so distinct query strings cache separately.
type ResponseCache struct {
	client  *redis.Client
	enabled bool
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New builds a Redis-backed response cache.
func New(client *redis.Client, enabled bool, logger *zap.Logger, metrics *observability.Metrics) *ResponseCache {
	return &ResponseCache{client: client, enabled: enabled, logger: logger, metrics: metrics}
}

// Middleware serves cached bodies and stores fresh 200 responses for ttl.
// Redis being down degrades to pass-through, never to failure.
func (rc *ResponseCache) Middleware(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rc.enabled || c.Method() != fiber.MethodGet {
			return c.Next()
		}
		key := "cache:" + c.OriginalURL()

		cached, err := rc.client.Get(c.UserContext(), key).Bytes()
		if err == nil {
			rc.metrics.RecordCacheHit()
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set("X-Cache", "HIT")
			return c.Send(cached)
		}
		if !errors.Is(err, redis.Nil) {
			rc.logger.Warn("response cache unavailable", zap.Error(err))
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			if err := rc.client.Set(c.UserContext(), key, body, ttl).Err(); err != nil {
				rc.logger.Warn("response cache store failed", zap.Error(err))
			}
			c.Set("X-Cache", "MISS")
		}
		return nil
	}
}

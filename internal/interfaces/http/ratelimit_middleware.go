package http

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/shop-inventory/pkg/logger"
)

// hitCounter lo implementan ratelimit.MemoryStore y ratelimit.RedisStore.
type hitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// RateLimit limita a limit peticiones por IP y ventana, contando bajo scope.
// Si el store falla la petición pasa (se registra el error).
func RateLimit(store hitCounter, scope string, limit int, window time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}
		count, resetAt, err := store.Hit(c.UserContext(), scope+":"+c.IP(), window)
		if err != nil {
			log.Error().Err(err).Str("scope", scope).Msg("rate limit: store no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if count > int64(limit) {
			rateLimited.Inc()
			retry := int(math.Ceil(time.Until(resetAt).Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return fail(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS",
				"Too many attempts, please try again later")
		}
		return c.Next()
	}
}

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// replay is what gets stored for a successful mutating request
type replay struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyMiddleware replays the stored response of a mutating request when
// the same X-Correlation-ID is sent again within ttl. Keys are scoped per user
// so two users cannot collide on a correlation ID.
func IdempotencyMiddleware(redisClient *redis.Client, ttl time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		correlationID := c.Get("X-Correlation-ID")
		if correlationID == "" {
			return c.Next()
		}

		key := fmt.Sprintf("%s%s:%s", idempotencyKeyPrefix, GetUserID(c), correlationID)
		ctx := c.UserContext()

		if cached, err := redisClient.Get(ctx, key).Bytes(); err == nil {
			var r replay
			if err := json.Unmarshal(cached, &r); err == nil {
				c.Set("X-Idempotent-Replay", "true")
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Status(r.Status).Send(r.Body)
			}
		} else if err != redis.Nil {
			log.Warnw("idempotency lookup failed", "key", key, "error", err)
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			return nil
		}

		data, err := json.Marshal(replay{Status: status, Body: c.Response().Body()})
		if err != nil {
			return nil
		}

		setCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisClient.Set(setCtx, key, data, ttl).Err(); err != nil {
			log.Warnw("idempotency store failed", "key", key, "error", err)
		}

		return nil
	}
}

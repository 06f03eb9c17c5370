package middleware

import (
	"fmt"
	"time"

	"github.com/Vedang260/EvoFest-Backend/config"
	"github.com/Vedang260/EvoFest-Backend/models"
	"github.com/gofiber/fiber/v2"
)

// RateLimit is a fixed-window limiter backed by redis INCR+EXPIRE. The key is
// the authenticated user when present, the client IP otherwise. With no redis
// connection it lets everything through.
func RateLimit(name string, max int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if config.Redis == nil {
			return c.Next()
		}

		ident := c.IP()
		if u, ok := c.Locals("user").(models.User); ok {
			ident = u.UserID
		}
		key := fmt.Sprintf("ratelimit:%s:%s", name, ident)

		count, err := config.Redis.Incr(c.Context(), key).Result()
		if err != nil {
			// limiter must never take the endpoint down with it
			return c.Next()
		}
		if count == 1 {
			config.Redis.Expire(c.Context(), key, window)
		}
		if count > max {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		}
		return c.Next()
	}
}

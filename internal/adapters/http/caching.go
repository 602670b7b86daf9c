package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint. Handlers can override by setting their own header first.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}

		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case strings.HasPrefix(path, "/v1/checkpoints/nearby"):
			ttl = "public, max-age=120" // 2 min for location queries

		case strings.Contains(path, "/zones"):
			ttl = "public, max-age=300" // Plans change only on replan

		case strings.Contains(path, "/checkpoints"):
			ttl = "public, max-age=120" // Checkpoint lists shift during setup

		case strings.HasPrefix(path, "/v1/hunts"):
			ttl = "public, max-age=300" // Hunt metadata is fairly stable

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300" // 5 min default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tripline/guidemod/internal/logger"
)

// AdminOnly guards the operator endpoints behind the console API key. With
// an empty configured key the guard is disabled (local development).
func AdminOnly(adminKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminKey == "" {
			return c.Next()
		}

		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Operator access attempt without API key")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "API key is required",
			})
		}

		if apiKey != adminKey {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Unauthorized operator access attempt")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Operator access required",
			})
		}

		return c.Next()
	}
}

package middleware

import (
	"strings"

	"foodbridge/internal/observability"
	"foodbridge/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired returns a middleware that enforces bearer-token
// authentication against the given session store. On success the donor
// ID is stored in c.Locals("donorID") as a uuid.UUID.
func AuthRequired(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			observability.AuthFailures.WithLabelValues("missing_header").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			observability.AuthFailures.WithLabelValues("malformed_header").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		donorID, ok := sessions.Validate(parts[1])
		if !ok {
			observability.AuthFailures.WithLabelValues("invalid_token").Inc()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("donorID", donorID)

		return c.Next()
	}
}

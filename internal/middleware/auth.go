package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/karim-d/VentureLinkBack/pkg/utils"
)

// AuthRequired rejects the request before any handler runs when the bearer
// token is missing or invalid. Stream endpoints rely on this running before
// the event stream is established.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := strings.CutPrefix(c.Get("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Bearer token required",
			})
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

package middleware

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the chat identity the gateway forwards.
// X-User-ID is the numeric chat user id and is mandatory; the display
// headers are optional and only used to refresh the stored profile.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawID := c.Get("X-User-ID")
		if rawID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID missing on %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through the gateway with auth context",
			})
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			log.Printf("❌ [USER_CTX] Bad X-User-ID %q on %s", rawID, c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid X-User-ID",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("username", c.Get("X-Username"))
		c.Locals("first_name", c.Get("X-First-Name"))

		return c.Next()
	}
}

// UserID reads the chat user id the middleware stored on the context.
func UserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("user_id").(int64)
	return id
}

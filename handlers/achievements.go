// handlers/achievements.go
package handlers

import (
	"pet-empire-bot/middleware"
	"pet-empire-bot/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAchievementRoutes(app *fiber.App, achievementService *services.AchievementService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/achievements", func(c *fiber.Ctx) error {
		entries, err := achievementService.List(
			middleware.UserID(c),
			c.Query("category"),
			c.Query("completed") == "true",
		)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"achievements": entries})
	})

	secured.Get("/achievements/stats", func(c *fiber.Ctx) error {
		stats, err := achievementService.Stats(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(stats)
	})
}

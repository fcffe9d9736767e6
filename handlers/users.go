// handlers/users.go
package handlers

import (
	"strconv"

	"pet-empire-bot/middleware"
	"pet-empire-bot/services"
	"pet-empire-bot/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Get-or-create from the chat identity the gateway forwards.
	secured.Post("/users/sync", func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)

		var username, firstName *string
		if v, _ := c.Locals("username").(string); v != "" {
			username = &v
		}
		if v, _ := c.Locals("first_name").(string); v != "" {
			firstName = &v
		}

		user, err := userService.GetOrCreate(userID, username, firstName)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	})

	secured.Get("/users/profile", func(c *fiber.Ctx) error {
		user, err := userService.Get(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"user":            user,
			"coins_formatted": utils.FormatNumber(user.Coins),
			"stars_formatted": utils.FormatNumber(user.Stars),
		})
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		users, err := userService.Leaderboard(c.Query("by", "coins"), limit)
		if err != nil {
			return fail(c, err)
		}

		rows := make([]fiber.Map, 0, len(users))
		for i, user := range users {
			name := "Player " + strconv.FormatInt(user.UserID, 10)
			if user.Username != nil && *user.Username != "" {
				name = *user.Username
			} else if user.FirstName != nil && *user.FirstName != "" {
				name = *user.FirstName
			}
			rows = append(rows, fiber.Map{
				"rank":            i + 1,
				"user_id":         user.UserID,
				"name":            name,
				"level":           user.Level,
				"coins":           user.Coins,
				"coins_formatted": utils.FormatNumber(user.Coins),
				"raids_won":       user.RaidsWon,
			})
		}
		return c.JSON(fiber.Map{"leaderboard": rows})
	})
}

// handlers/raids.go
package handlers

import (
	"strconv"

	"pet-empire-bot/middleware"
	"pet-empire-bot/models"
	"pet-empire-bot/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRaidRoutes(app *fiber.App, raidService *services.RaidService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/raids/targets", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		targets, err := raidService.Targets(middleware.UserID(c), limit)
		if err != nil {
			return fail(c, err)
		}

		rows := make([]fiber.Map, 0, len(targets))
		for _, target := range targets {
			name := "Player " + strconv.FormatInt(target.UserID, 10)
			if target.Username != nil && *target.Username != "" {
				name = *target.Username
			}
			rows = append(rows, fiber.Map{
				"user_id": target.UserID,
				"name":    name,
				"level":   target.Level,
			})
		}
		return c.JSON(fiber.Map{"targets": rows})
	})

	secured.Post("/raids", func(c *fiber.Ctx) error {
		var body struct {
			DefenderID int64    `json:"defender_id"`
			PetIDs     []string `json:"pet_ids"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		outcome, err := raidService.Execute(middleware.UserID(c), body.DefenderID, body.PetIDs)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(outcome)
	})

	secured.Get("/raids/check/:defender_id", func(c *fiber.Ctx) error {
		defenderID, err := strconv.ParseInt(c.Params("defender_id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid defender id"})
		}
		if err := raidService.CheckEligibility(middleware.UserID(c), defenderID); err != nil {
			if services.IsValidation(err) {
				return c.JSON(fiber.Map{"eligible": false, "reason": err.Error()})
			}
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"eligible": true})
	})

	secured.Get("/raids/history", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		raids, err := raidService.History(middleware.UserID(c), limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"raids": raids})
	})

	secured.Get("/raids/stats", func(c *fiber.Ctx) error {
		stats, err := raidService.Stats(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(stats)
	})

	secured.Post("/raids/traps", func(c *fiber.Ctx) error {
		var body struct {
			TrapType models.TrapType `json:"trap_type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		level, err := raidService.BuyTrap(middleware.UserID(c), body.TrapType)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"trap_type": body.TrapType, "level": level})
	})
}

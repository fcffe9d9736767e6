// handlers/missions.go
package handlers

import (
	"pet-empire-bot/middleware"
	"pet-empire-bot/models"
	"pet-empire-bot/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMissionRoutes(app *fiber.App, missionService *services.MissionService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/missions", func(c *fiber.Ctx) error {
		var body struct {
			PetID       string             `json:"pet_id"`
			MissionType models.MissionType `json:"mission_type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		mission, err := missionService.Start(middleware.UserID(c), body.PetID, body.MissionType)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(mission)
	})

	secured.Get("/missions", func(c *fiber.Ctx) error {
		status := models.MissionStatus(c.Query("status"))
		missions, err := missionService.List(middleware.UserID(c), status)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"missions": missions})
	})

	// Collect settles a due mission on demand; the sweeper covers the rest.
	secured.Post("/missions/:id/collect", func(c *fiber.Ctx) error {
		outcome, err := missionService.Collect(middleware.UserID(c), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(outcome)
	})

	secured.Post("/missions/:id/skip", func(c *fiber.Ctx) error {
		cost, err := missionService.SkipAhead(middleware.UserID(c), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"stars_spent": cost})
	})

	secured.Post("/missions/:id/cancel", func(c *fiber.Ctx) error {
		if err := missionService.Cancel(middleware.UserID(c), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"cancelled": true})
	})
}

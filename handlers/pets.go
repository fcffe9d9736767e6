// handlers/pets.go
package handlers

import (
	"pet-empire-bot/middleware"
	"pet-empire-bot/models"
	"pet-empire-bot/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPetRoutes(app *fiber.App, petService *services.PetService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/pets/egg", func(c *fiber.Ctx) error {
		var body struct {
			EggType models.EggType `json:"egg_type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		pet, err := petService.OpenEgg(middleware.UserID(c), body.EggType)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pet)
	})

	secured.Get("/pets", func(c *fiber.Ctx) error {
		pets, err := petService.ListPets(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"pets": pets})
	})

	secured.Get("/pets/available", func(c *fiber.Ctx) error {
		pets, err := petService.AvailableForMission(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"pets": pets})
	})

	secured.Get("/pets/stats", func(c *fiber.Ctx) error {
		stats, err := petService.CollectionStats(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(stats)
	})

	secured.Get("/pets/:id", func(c *fiber.Ctx) error {
		pet, err := petService.GetPet(c.Params("id"), middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(pet)
	})

	secured.Post("/pets/:id/defend", func(c *fiber.Ctx) error {
		var body struct {
			Defending bool `json:"defending"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		if err := petService.SetDefending(middleware.UserID(c), c.Params("id"), body.Defending); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"defending": body.Defending})
	})
}

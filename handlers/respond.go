package handlers

import (
	"errors"

	"pet-empire-bot/services"

	"github.com/gofiber/fiber/v2"
)

// fail maps service errors to HTTP: rule violations are 400, missing
// records 404, anything else 500 with the cause attached.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
			"cause": err.Error(),
		})
	}
}

// handlers/trades.go
package handlers

import (
	"pet-empire-bot/middleware"
	"pet-empire-bot/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTradeRoutes(app *fiber.App, tradeService *services.TradeService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/trades", func(c *fiber.Ctx) error {
		var body struct {
			ReceiverID     int64    `json:"receiver_id"`
			SenderPetIDs   []string `json:"sender_pet_ids"`
			ReceiverPetIDs []string `json:"receiver_pet_ids"`
			SenderCoins    int64    `json:"sender_coins"`
			ReceiverCoins  int64    `json:"receiver_coins"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		trade, err := tradeService.Offer(
			middleware.UserID(c), body.ReceiverID,
			body.SenderPetIDs, body.ReceiverPetIDs,
			body.SenderCoins, body.ReceiverCoins,
		)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(trade)
	})

	secured.Post("/trades/:id/accept", func(c *fiber.Ctx) error {
		trade, err := tradeService.Accept(middleware.UserID(c), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(trade)
	})

	secured.Post("/trades/:id/decline", func(c *fiber.Ctx) error {
		if err := tradeService.Decline(middleware.UserID(c), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"declined": true})
	})

	secured.Get("/trades", func(c *fiber.Ctx) error {
		trades, err := tradeService.List(middleware.UserID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"trades": trades})
	})
}

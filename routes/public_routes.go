package routes

import (
	"github.com/arnav2305/eduprime/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/packages", handlers.ListActivePackages)
	api.Get("/payments/instructions", handlers.GetPaymentInstructions)
}

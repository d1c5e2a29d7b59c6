package routes

import (
	"github.com/arnav2305/eduprime/handlers"
	"github.com/arnav2305/eduprime/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Middleware stays on the subgroup: a Use on the shared /api/v1
	// prefix would leak onto every later-registered route under it.
	profile := api.Group("/profile", middleware.Protected(), middleware.UserRequired())
	profile.Get("/me", handlers.GetProfile)
	profile.Put("/me", handlers.UpdateProfile)
}

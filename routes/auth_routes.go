package routes

import (
	"github.com/arnav2305/eduprime/handlers"
	"github.com/arnav2305/eduprime/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)

	auth.Get("/role", middleware.OptionalAuth(), handlers.GetCallerRole)
}

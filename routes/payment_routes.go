package routes

import (
	"github.com/arnav2305/eduprime/handlers"
	"github.com/arnav2305/eduprime/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	proofs := api.Group("/proofs", middleware.Protected(), middleware.UserRequired())
	proofs.Post("", handlers.SubmitPaymentProof)
	proofs.Get("/me", handlers.GetMyPaymentProofs)

	// Registered per-route: /payments/instructions on the same prefix is
	// public and must stay token-free.
	api.Get("/payments/me", middleware.Protected(), middleware.UserRequired(), handlers.GetMyPayments)
}

package routes

import (
	"github.com/arnav2305/eduprime/handlers"
	"github.com/arnav2305/eduprime/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	proofs := admin.Group("/proofs")
	proofs.Get("", handlers.ListPaymentProofs)
	proofs.Post("/:proofId/approve", handlers.ApprovePaymentProof)
	proofs.Post("/:proofId/reject", handlers.RejectPaymentProof)

	packages := admin.Group("/packages")
	packages.Get("", handlers.AdminListPackages)
	packages.Post("", handlers.CreatePackage)
	packages.Put("/:packageId", handlers.UpdatePackage)
	packages.Patch("/:packageId/status", handlers.TogglePackageStatus)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	admin.Get("/stats", handlers.GetAdminStats)

	// Live review-queue feed. Browsers cannot attach an Authorization
	// header to a websocket dial, so auth happens over the socket itself.
	// The route lives outside the /admin prefix: fiber matches Use
	// middleware by string prefix, so anything under /admin would inherit
	// the JWT guard and never reach the socket handshake.
	api.Use("/ws/admin", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/admin", websocket.New(handlers.ServeAdminWs))
}

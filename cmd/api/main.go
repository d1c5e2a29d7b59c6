package main

import (
	"log"
	"time"

	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/handlers"
	"github.com/arnav2305/eduprime/jobs"
	"github.com/arnav2305/eduprime/notifications"
	"github.com/arnav2305/eduprime/routes"
	"github.com/arnav2305/eduprime/storage"
	"github.com/arnav2305/eduprime/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedPackages()
	notifications.InitEmailService()

	blobStore, err := storage.NewCloudinaryStore()
	if err != nil {
		log.Printf("⚠️ Blob storage not configured, proof submissions will be unavailable: %v", err)
	} else {
		handlers.InitBlobStore(blobStore)
		log.Println("✅ Blob storage initialized successfully")
	}

	c := cron.New()
	c.AddFunc("0 9 * * *", jobs.SendPendingProofDigest)
	go c.Start()
	log.Println("✅ Cron job for pending-proof digest scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "EduPrime",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		BodyLimit:         8 * 1024 * 1024,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to EduPrime API",
		})
	})

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.PaymentRoutes(app)
	routes.UploadRoutes(app)
	routes.AdminRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}

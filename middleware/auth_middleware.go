package middleware

import (
	config "github.com/arnav2305/eduprime/configs"
	"github.com/arnav2305/eduprime/guard"
	"github.com/arnav2305/eduprime/models"
	"github.com/arnav2305/eduprime/session"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

// OptionalAuth parses a bearer token when one is present but lets the
// request through as a guest when it is missing or invalid.
func OptionalAuth() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(config.Config("JWT_SECRET")),
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// RequireRole resolves the caller's session and applies the route guard.
// The resolved session is stashed in Locals for the handler.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := session.FromRequest(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve session"})
		}

		decision := guard.Decide(s.Authenticated(), s.Role, !s.Initialized, role)
		switch decision.Action {
		case guard.RedirectLogin:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":       decision.Notice,
				"redirect_to": decision.RedirectTo,
			})
		case guard.RedirectHome:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":       decision.Notice,
				"redirect_to": decision.RedirectTo,
			})
		case guard.Loading:
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Session is still initializing, retry shortly",
			})
		}

		c.Locals("session", s)
		return c.Next()
	}
}

func AdminRequired() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

func UserRequired() fiber.Handler {
	return RequireRole("")
}

package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/arnav2305/eduprime/guard"
	"github.com/arnav2305/eduprime/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without a parsed token in Locals the session resolves to a guest, so the
// guard must turn the request away before the handler runs.
func TestRequireRoleRejectsGuests(t *testing.T) {
	for _, requiredRole := range []string{"", models.RoleAdmin} {
		app := fiber.New()
		handlerRan := false
		app.Get("/protected", RequireRole(requiredRole), func(c *fiber.Ctx) error {
			handlerRan = true
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.False(t, handlerRan, "protected handler must not run for a guest")

		var body struct {
			Error      string `json:"error"`
			RedirectTo string `json:"redirect_to"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, guard.LoginRoute, body.RedirectTo)
		assert.NotEmpty(t, body.Error)
	}
}

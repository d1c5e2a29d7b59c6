package handlers

import (
	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/session"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name"`
	Phone             *string `json:"phone"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// GetProfile returns the caller's resolved profile. A valid token whose user
// record has been removed resolves to an absent profile, not an error.
func GetProfile(c *fiber.Ctx) error {
	s, ok := c.Locals("session").(*session.Session)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login to continue"})
	}

	if s.Profile == nil {
		return c.JSON(fiber.Map{"profile": nil, "role": s.Role})
	}
	return c.JSON(fiber.Map{"profile": s.Profile, "role": s.Role})
}

func UpdateProfile(c *fiber.Ctx) error {
	s, ok := c.Locals("session").(*session.Session)
	if !ok || s.Profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login to continue"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	user := s.Profile
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := database.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	if err := s.Refresh(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reload profile"})
	}

	return c.JSON(s.Profile)
}

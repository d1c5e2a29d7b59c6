package handlers

import (
	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/models"
	"github.com/gofiber/fiber/v2"
)

type PackageRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Price   int    `json:"price" validate:"required,gt=0"`
	Courses string `json:"courses" validate:"required"`
}

// ListActivePackages is the public catalog read backing the pricing cards.
func ListActivePackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := database.DB.Where("is_active = ?", true).Order("price asc").Find(&packages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load packages"})
	}
	return c.JSON(packages)
}

func AdminListPackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := database.DB.Order("price asc").Find(&packages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load packages"})
	}
	return c.JSON(packages)
}

func CreatePackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pkg := models.Package{
		Name:    req.Name,
		Price:   req.Price,
		Courses: req.Courses,
	}

	if err := database.DB.Create(&pkg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create package"})
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func UpdatePackage(c *fiber.Ctx) error {
	packageID := c.Params("packageId")
	var pkg models.Package
	if err := database.DB.First(&pkg, "id = ?", packageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}

	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pkg.Name = req.Name
	pkg.Price = req.Price
	pkg.Courses = req.Courses
	database.DB.Save(&pkg)

	return c.JSON(pkg)
}

func TogglePackageStatus(c *fiber.Ctx) error {
	packageID := c.Params("packageId")
	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	result := database.DB.Model(&models.Package{}).Where("id = ?", packageID).Update("is_active", req.IsActive)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update package status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

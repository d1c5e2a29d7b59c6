package handlers

import (
	"fmt"
	"time"

	"github.com/arnav2305/eduprime/cache"
	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/models"
	"github.com/arnav2305/eduprime/notifications"
	"github.com/arnav2305/eduprime/services"
	"github.com/arnav2305/eduprime/session"
	"github.com/arnav2305/eduprime/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListPaymentProofs returns all proofs, optionally filtered by status.
func ListPaymentProofs(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" {
		type statusFilter struct {
			Status string `validate:"oneof=pending approved rejected"`
		}
		if err := validate.Struct(statusFilter{Status: status}); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
		}
	}

	query := database.DB.Preload("User").Preload("Package").Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var proofs []models.PaymentProof
	if err := query.Find(&proofs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment proofs"})
	}

	return c.JSON(fiber.Map{
		"proofs":  proofs,
		"version": cache.Version(cache.AllPaymentProofs),
	})
}

// ApprovePaymentProof moves a pending proof to approved and writes the
// authoritative payment ledger entry in the same transaction. Non-pending
// proofs are rejected with a conflict: approved and rejected are terminal.
func ApprovePaymentProof(c *fiber.Ctx) error {
	admin, _ := c.Locals("session").(*session.Session)

	proofID, err := uuid.Parse(c.Params("proofId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proof ID format"})
	}

	var proof models.PaymentProof
	if err := database.DB.Preload("User").Preload("Package").First(&proof, "id = ?", proofID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment proof not found"})
	}

	var payment models.Payment
	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PaymentProof{}).
			Where("id = ? AND status = ?", proofID, models.ProofStatusPending).
			Updates(map[string]interface{}{
				"status":      models.ProofStatusApproved,
				"reviewed_by": admin.UserID,
				"reviewed_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		payment = models.Payment{
			UserID:        proof.UserID,
			PackageID:     proof.PackageID,
			ProofID:       &proof.ID,
			Amount:        proof.Package.Price,
			TransactionID: proof.TransactionID,
			Status:        "succeeded",
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Proof is no longer pending"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve payment proof"})
	}

	cache.Invalidate(cache.AllPaymentProofs)
	cache.Invalidate(cache.MyPaymentProofs)
	cache.Invalidate(cache.MyPayments)
	cache.Invalidate(cache.AdminStats)

	websocket.PublishProofEvent(websocket.EventProofApproved, proof.ID, models.ProofStatusApproved, proof.User.FullName, proof.Package.Name)

	go notifications.SendEmail(
		proof.User.FullName,
		proof.User.Email,
		"Your Payment has been Verified!",
		fmt.Sprintf("<h1>Payment Approved</h1><p>Your payment for the <b>%s</b> package has been verified. Your courses are now unlocked.</p>", proof.Package.Name),
	)
	go services.GenerateReceipt(payment.ID)

	return c.JSON(fiber.Map{"message": "Payment proof approved", "payment_id": payment.ID})
}

// RejectPaymentProof moves a pending proof to rejected with an optional note
// explaining what was wrong.
func RejectPaymentProof(c *fiber.Ctx) error {
	admin, _ := c.Locals("session").(*session.Session)

	proofID, err := uuid.Parse(c.Params("proofId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid proof ID format"})
	}

	type Request struct {
		Note *string `json:"note,omitempty"`
	}
	var req Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}

	var proof models.PaymentProof
	if err := database.DB.Preload("User").Preload("Package").First(&proof, "id = ?", proofID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment proof not found"})
	}

	result := database.DB.Model(&models.PaymentProof{}).
		Where("id = ? AND status = ?", proofID, models.ProofStatusPending).
		Updates(map[string]interface{}{
			"status":      models.ProofStatusRejected,
			"admin_note":  req.Note,
			"reviewed_by": admin.UserID,
			"reviewed_at": time.Now(),
		})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject payment proof"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Proof is no longer pending"})
	}

	cache.Invalidate(cache.AllPaymentProofs)
	cache.Invalidate(cache.MyPaymentProofs)
	cache.Invalidate(cache.AdminStats)

	websocket.PublishProofEvent(websocket.EventProofRejected, proof.ID, models.ProofStatusRejected, proof.User.FullName, proof.Package.Name)

	reason := "The submitted proof could not be verified."
	if req.Note != nil && *req.Note != "" {
		reason = *req.Note
	}
	go notifications.SendEmail(
		proof.User.FullName,
		proof.User.Email,
		"Update on Your Payment Verification",
		fmt.Sprintf("<h1>Payment Not Verified</h1><p>We could not verify your payment for the <b>%s</b> package.</p><p>Reason: %s</p><p>You can submit a new proof from your dashboard.</p>", proof.Package.Name, reason),
	)

	return c.JSON(fiber.Map{"message": "Payment proof rejected"})
}

func GetAdminStats(c *fiber.Ctx) error {
	var totalUsers, totalPackages, pendingProofs, approvedProofs, rejectedProofs int64
	var revenue int64

	database.DB.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&totalUsers)
	database.DB.Model(&models.Package{}).Where("is_active = ?", true).Count(&totalPackages)
	database.DB.Model(&models.PaymentProof{}).Where("status = ?", models.ProofStatusPending).Count(&pendingProofs)
	database.DB.Model(&models.PaymentProof{}).Where("status = ?", models.ProofStatusApproved).Count(&approvedProofs)
	database.DB.Model(&models.PaymentProof{}).Where("status = ?", models.ProofStatusRejected).Count(&rejectedProofs)
	database.DB.Model(&models.Payment{}).Where("status = ?", "succeeded").Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

	return c.JSON(fiber.Map{
		"total_users":     totalUsers,
		"active_packages": totalPackages,
		"pending_proofs":  pendingProofs,
		"approved_proofs": approvedProofs,
		"rejected_proofs": rejectedProofs,
		"total_revenue":   revenue,
		"version":         cache.Version(cache.AdminStats),
	})
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Where("role = ?", models.RoleUser).Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}
	return c.JSON(users)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")
	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	result := database.DB.Model(&models.User{}).Where("id = ? AND role = ?", userID, models.RoleUser).Update("is_active", req.IsActive)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

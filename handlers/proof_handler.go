package handlers

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/arnav2305/eduprime/cache"
	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/models"
	"github.com/arnav2305/eduprime/session"
	"github.com/arnav2305/eduprime/storage"
	"github.com/arnav2305/eduprime/websocket"
	"github.com/arnav2305/eduprime/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BlobStore is the shared upload capability, wired at boot. Submissions fail
// with a service-unavailable error while it is nil.
var BlobStore storage.Store

func InitBlobStore(store storage.Store) {
	BlobStore = store
}

// dbProofStore persists proof records for the submission workflow.
type dbProofStore struct{}

func (dbProofStore) CreateProof(ctx context.Context, userID, packageID uuid.UUID, transactionID string, screenshot storage.Handle) (uuid.UUID, error) {
	proof := models.PaymentProof{
		UserID:        userID,
		PackageID:     packageID,
		TransactionID: transactionID,
		ScreenshotURL: screenshot.GetDirectURL(),
		ScreenshotKey: screenshot.PublicID,
		Status:        models.ProofStatusPending,
	}
	if err := database.DB.WithContext(ctx).Create(&proof).Error; err != nil {
		return uuid.Nil, err
	}
	return proof.ID, nil
}

// SubmitPaymentProof accepts the purchase form: a package id, a bank
// transaction reference and a screenshot of the transfer. The screenshot is
// validated before a single byte leaves the process.
func SubmitPaymentProof(c *fiber.Ctx) error {
	s, ok := c.Locals("session").(*session.Session)
	if !ok || !s.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login to continue"})
	}

	packageID, err := uuid.Parse(c.FormValue("package_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID format"})
	}

	var pkg models.Package
	if err := database.DB.First(&pkg, "id = ? AND is_active = ?", packageID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Active package not found"})
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment screenshot is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read screenshot"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read screenshot"})
	}

	submission := workflow.NewSubmission(BlobStore, dbProofStore{}, cache.Default(),
		cache.MyPaymentProofs, cache.AllPaymentProofs, cache.AdminStats)

	proofID, err := submission.Run(c.Context(), workflow.Input{
		UserID:        s.UserID,
		PackageID:     packageID,
		TransactionID: c.FormValue("transaction_id"),
		ContentType:   fileHeader.Header.Get("Content-Type"),
		Screenshot:    data,
	})
	if err != nil {
		return proofSubmissionError(c, err)
	}

	userName := ""
	if s.Profile != nil {
		userName = s.Profile.FullName
	}
	websocket.PublishProofEvent(websocket.EventProofSubmitted, proofID, models.ProofStatusPending, userName, pkg.Name)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"proof_id": proofID,
		"status":   models.ProofStatusPending,
		"message":  "Payment proof submitted. You will be notified once it is verified.",
	})
}

func proofSubmissionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, workflow.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, workflow.ErrNotAvailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Payment service is temporarily unavailable, please try again later"})
	case errors.Is(err, workflow.ErrSubmissionInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A submission is already in progress"})
	case errors.Is(err, workflow.ErrUpload):
		log.Printf("🔥 Screenshot upload failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not upload your screenshot, please try again"})
	default:
		log.Printf("🔥 Proof submission failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not submit your payment proof, please try again"})
	}
}

func GetMyPaymentProofs(c *fiber.Ctx) error {
	s, ok := c.Locals("session").(*session.Session)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login to continue"})
	}

	var proofs []models.PaymentProof
	err := database.DB.
		Preload("Package").
		Where("user_id = ?", s.UserID).
		Order("created_at desc").
		Find(&proofs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment proofs"})
	}

	return c.JSON(fiber.Map{
		"proofs":  proofs,
		"version": cache.Version(cache.MyPaymentProofs),
	})
}

// GetMyPayments reads the caller's ledger entries. These appear only after
// an admin approves a proof.
func GetMyPayments(c *fiber.Ctx) error {
	s, ok := c.Locals("session").(*session.Session)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please login to continue"})
	}

	var payments []models.Payment
	err := database.DB.
		Preload("Package").
		Where("user_id = ?", s.UserID).
		Order("created_at desc").
		Find(&payments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payments"})
	}

	return c.JSON(fiber.Map{
		"payments": payments,
		"version":  cache.Version(cache.MyPayments),
	})
}

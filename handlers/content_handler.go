package handlers

import (
	config "github.com/arnav2305/eduprime/configs"
	"github.com/gofiber/fiber/v2"
)

// GetPaymentInstructions serves the static bank-transfer instructions shown
// in the purchase modal before the user uploads their proof.
func GetPaymentInstructions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"method": "bank_transfer",
		"account": fiber.Map{
			"account_name":   config.ConfigOr("BANK_ACCOUNT_NAME", "EduPrime Learning Pvt Ltd"),
			"account_number": config.ConfigOr("BANK_ACCOUNT_NUMBER", "50100234567890"),
			"ifsc_code":      config.ConfigOr("BANK_IFSC_CODE", "HDFC0001234"),
			"bank_name":      config.ConfigOr("BANK_NAME", "HDFC Bank"),
			"upi_id":         config.ConfigOr("UPI_ID", "eduprime@hdfcbank"),
		},
		"steps": []string{
			"Transfer the package amount to the account above, or pay via UPI.",
			"Note down the transaction reference number from your bank or UPI app.",
			"Take a screenshot of the successful transaction.",
			"Submit the reference number and screenshot using the form below.",
			"Your courses unlock once our team verifies the payment, usually within 24 hours.",
		},
		"currency": "INR",
	})
}

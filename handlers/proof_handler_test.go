package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/arnav2305/eduprime/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofSubmissionErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid file type", workflow.ErrInvalidFileType, fiber.StatusBadRequest},
		{"file too large", workflow.ErrFileTooLarge, fiber.StatusBadRequest},
		{"short transaction id", workflow.ErrInvalidTransactionID, fiber.StatusBadRequest},
		{"blob store missing", workflow.ErrNotAvailable, fiber.StatusServiceUnavailable},
		{"submission in flight", workflow.ErrSubmissionInFlight, fiber.StatusConflict},
		{"upload failed", fmt.Errorf("%w: bucket unreachable", workflow.ErrUpload), fiber.StatusBadGateway},
		{"remote rejected", fmt.Errorf("%w: permission denied", workflow.ErrSubmission), fiber.StatusInternalServerError},
		{"unknown error", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/submit", func(c *fiber.Ctx) error {
				return proofSubmissionError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error, "every failure carries a human-readable message")
		})
	}
}

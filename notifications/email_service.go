package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/mail"
	"time"

	config "github.com/arnav2305/eduprime/configs"
)

const defaultBrevoURL = "https://api.brevo.com/v3/smtp/email"

// BrevoService sends transactional mail through the Brevo HTTP API. The
// endpoint is configurable so tests and staging can point it elsewhere.
type BrevoService struct {
	apiURL      string
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
}

var EmailClient *BrevoService

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	Sender      recipient   `json:"sender"`
	To          []recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		apiURL:      config.ConfigOr("BREVO_API_URL", defaultBrevoURL),
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) send(ctx context.Context, toName, toEmail, subject, htmlContent string) error {
	addr, err := mail.ParseAddress(toEmail)
	if err != nil {
		return fmt.Errorf("invalid recipient email %q: %w", toEmail, err)
	}

	payload := sendRequest{
		Sender:      recipient{Email: s.senderEmail, Name: s.senderName},
		To:          []recipient{{Email: addr.Address, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// SendEmail delivers one transactional mail, logging instead of failing:
// callers fire it from goroutines after the triggering write has already
// committed.
func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Println("Email client not initialized, skipping email send.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := EmailClient.send(ctx, toName, toEmail, subject, htmlContent); err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return
	}
	log.Printf("✅ Email sent successfully to %s", toEmail)
}

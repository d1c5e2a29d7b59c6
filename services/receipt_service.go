package services

import (
	"bytes"
	"context"
	"html/template"
	"log"
	"time"

	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/models"
	"github.com/arnav2305/eduprime/storage"
	"github.com/arnav2305/eduprime/utils"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: Arial, sans-serif; margin: 48px; color: #1a1a2e; }
.header { border-bottom: 3px solid #16213e; padding-bottom: 16px; }
.header h1 { margin: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 32px; }
td { padding: 12px 8px; border-bottom: 1px solid #e0e0e0; }
td:first-child { color: #666; width: 40%; }
.total { font-size: 1.3em; font-weight: bold; }
.footer { margin-top: 48px; color: #888; font-size: 0.85em; }
</style></head>
<body>
<div class="header"><h1>EduPrime</h1><p>Payment Receipt</p></div>
<table>
<tr><td>Receipt No.</td><td>{{.ReceiptNumber}}</td></tr>
<tr><td>Date</td><td>{{.Date}}</td></tr>
<tr><td>Billed To</td><td>{{.UserName}} ({{.UserEmail}})</td></tr>
<tr><td>Package</td><td>{{.PackageName}}</td></tr>
<tr><td>Transaction Reference</td><td>{{.TransactionID}}</td></tr>
<tr><td class="total">Amount Paid</td><td class="total">&#8377;{{.Amount}}</td></tr>
</table>
<div class="footer">This receipt was generated automatically after manual verification of your bank transfer.</div>
</body>
</html>`

// GenerateReceipt renders a PDF receipt for an approved payment, stores it
// and links it from the ledger entry. Failures are logged, never surfaced:
// the approval itself has already committed.
func GenerateReceipt(paymentID uuid.UUID) {
	var payment models.Payment
	if err := database.DB.Preload("User").Preload("Package").First(&payment, "id = ?", paymentID).Error; err != nil {
		log.Printf("🔥 Receipt generation: payment %s not found: %v", paymentID, err)
		return
	}

	htmlContent, err := renderReceiptHTML(payment)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for payment %s: %v", paymentID, err)
		return
	}

	pdfBytes, err := renderPDFFromHTML(htmlContent)
	if err != nil {
		log.Printf("🔥 Failed to render receipt PDF for payment %s: %v", paymentID, err)
		return
	}

	store, err := storage.NewCloudinaryStore()
	if err != nil {
		log.Printf("🔥 Receipt storage unavailable: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	handle, err := store.Upload(ctx, storage.FromBytes(pdfBytes, "application/pdf"), storage.ReceiptFolder)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for payment %s: %v", paymentID, err)
		return
	}

	receiptURL := handle.GetDirectURL()
	payment.ReceiptURL = &receiptURL
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("🔥 Failed to link receipt to payment %s: %v", paymentID, err)
		return
	}

	log.Printf("✅ Generated receipt for payment %s", paymentID)
}

func renderReceiptHTML(payment models.Payment) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		ReceiptNumber string
		Date          string
		UserName      string
		UserEmail     string
		PackageName   string
		TransactionID string
		Amount        int
	}{
		ReceiptNumber: utils.ReceiptNumber(payment.ID),
		Date:          payment.CreatedAt.Format("January 2, 2006"),
		UserName:      payment.User.FullName,
		UserEmail:     payment.User.Email,
		PackageName:   payment.Package.Name,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

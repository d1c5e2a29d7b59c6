package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReceiptNumber derives a short human-readable receipt reference from a
// payment id, e.g. EP-20260831-1A2B3C4D.
func ReceiptNumber(paymentID uuid.UUID) string {
	short := strings.ToUpper(strings.ReplaceAll(paymentID.String(), "-", ""))[:8]
	return fmt.Sprintf("EP-%s-%s", time.Now().Format("20060102"), short)
}

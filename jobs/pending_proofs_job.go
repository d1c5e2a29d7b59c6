package jobs

import (
	"fmt"
	"log"
	"time"

	config "github.com/arnav2305/eduprime/configs"
	"github.com/arnav2305/eduprime/database"
	"github.com/arnav2305/eduprime/models"
	"github.com/arnav2305/eduprime/notifications"
)

// SendPendingProofDigest mails the admin team a summary of proofs that have
// been waiting for review longer than a day. Users are promised verification
// within 24 hours, so anything older is overdue.
func SendPendingProofDigest() {
	log.Println("Running job: SendPendingProofDigest...")

	cutoff := time.Now().Add(-24 * time.Hour)

	var overdueProofs []models.PaymentProof
	err := database.DB.
		Preload("User").
		Preload("Package").
		Where("status = ? AND created_at < ?", models.ProofStatusPending, cutoff).
		Order("created_at asc").
		Find(&overdueProofs).Error
	if err != nil {
		log.Printf("Error checking for overdue proofs: %v", err)
		return
	}

	if len(overdueProofs) == 0 {
		return
	}

	rows := ""
	for _, proof := range overdueProofs {
		rows += fmt.Sprintf(
			"<li><b>%s</b> — %s (ref %s, submitted %s)</li>",
			proof.User.FullName,
			proof.Package.Name,
			proof.TransactionID,
			proof.CreatedAt.Format("Jan 2 15:04"),
		)
	}

	adminEmail := config.Config("ADMIN_EMAIL")
	adminName := config.ConfigOr("ADMIN_FULL_NAME", "Admin")
	subject := fmt.Sprintf("%d payment proofs waiting over 24 hours", len(overdueProofs))
	body := fmt.Sprintf(
		"<h1>Overdue Payment Proofs</h1><p>The following submissions have been pending for more than a day:</p><ul>%s</ul><p>Please review them from the admin dashboard.</p>",
		rows,
	)

	go notifications.SendEmail(adminName, adminEmail, subject, body)
	log.Printf("Sent pending-proof digest covering %d proofs", len(overdueProofs))
}

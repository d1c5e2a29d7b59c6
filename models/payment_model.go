package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the authoritative ledger entry. One is created when an admin
// approves a proof; clients only ever read these.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PackageID     uuid.UUID  `gorm:"type:uuid;not null" json:"package_id"`
	ProofID       *uuid.UUID `gorm:"type:uuid;unique" json:"proof_id"`
	Amount        int        `gorm:"not null" json:"amount"`
	TransactionID string     `gorm:"size:255;not null" json:"transaction_id"`
	Status        string     `gorm:"size:20;not null" json:"status"`
	ReceiptURL    *string    `gorm:"size:512" json:"receipt_url,omitempty"`

	User    User    `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Package Package `gorm:"foreignkey:PackageID" json:"package,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

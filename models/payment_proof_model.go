package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProofStatusPending  = "pending"
	ProofStatusApproved = "approved"
	ProofStatusRejected = "rejected"
)

// PaymentProof is a user-submitted claim of a bank transfer: a transaction
// reference plus a screenshot, pending human verification. Status moves from
// pending to approved or rejected exactly once; both are terminal.
type PaymentProof struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PackageID     uuid.UUID `gorm:"type:uuid;not null" json:"package_id"`
	TransactionID string    `gorm:"size:255;not null" json:"transaction_id"`
	ScreenshotURL string    `gorm:"size:512;not null" json:"screenshot_url"`
	ScreenshotKey string    `gorm:"size:255;not null" json:"-"`
	Status        string    `gorm:"size:20;not null;default:'pending';index" json:"status"`

	AdminNote  *string    `gorm:"type:text" json:"admin_note,omitempty"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	User    User    `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Package Package `gorm:"foreignkey:PackageID" json:"package,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PaymentProof) IsPending() bool {
	return p.Status == ProofStatusPending
}

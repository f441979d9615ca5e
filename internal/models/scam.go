package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FingerprintKind string

const (
	FingerprintPayee FingerprintKind = "PAYEE"
	FingerprintCode  FingerprintKind = "CODE"
)

// ScamSignature is a confirmed-fraud fact keyed by a one-way hash of a payee
// name or a barcode/PIX key. The hash gives the lookup key a stable shape; it
// is not a cryptographic protection of payee identity (payee names are not
// secret). Signatures accumulate report counts and are never deleted within
// the process lifetime.
type ScamSignature struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Fingerprint string          `gorm:"uniqueIndex;not null" json:"fingerprint"`
	Kind        FingerprintKind `gorm:"index" json:"kind"`
	ReportCount int             `gorm:"not null" json:"report_count"`
	FirstSeenAt time.Time       `json:"first_seen_at"`
	LastSeenAt  time.Time       `json:"last_seen_at"`
}

func (s *ScamSignature) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	return
}

// ComplaintRecord mirrors an external complaints ledger entry for a payee.
type ComplaintRecord struct {
	ID         string `gorm:"primaryKey" json:"id"`
	PayeeName  string `gorm:"index;not null" json:"payee_name"`
	Complaints int    `json:"complaints"`
	Reason     string `json:"reason"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (c *ComplaintRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	return
}

// ScamReport carries the fields a user confirms as fraudulent back into the
// signature store. Fingerprints are derived from PayeeName and Barcode/PixKey.
type ScamReport struct {
	CustomerID string   `json:"customer_id"`
	PayeeName  string   `json:"payee_name,omitempty"`
	Barcode    string   `json:"barcode,omitempty"`
	PixKey     string   `json:"pix_key,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Kind       string   `json:"kind,omitempty"`
}

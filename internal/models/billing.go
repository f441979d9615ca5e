package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "PENDING"
	ChargeStatusPaid    ChargeStatus = "PAID"
	ChargeStatusExpired ChargeStatus = "EXPIRED"
)

type Customer struct {
	ID            string `gorm:"primaryKey"`
	Name          string
	Status        string
	LastPaymentAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Charge struct {
	ID         string       `gorm:"primaryKey" json:"id"`
	CustomerID string       `gorm:"index;not null" json:"customer_id"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Service    string       `json:"service"`
	Status     ChargeStatus `gorm:"index" json:"status"`
	DueDate    time.Time    `json:"due_date"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (c *Charge) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	return
}

// Payee is an entry in the legitimate-payee registry.
type Payee struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	TaxID     string `json:"tax_id"`
	Status    string `json:"status"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Payee) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return
}

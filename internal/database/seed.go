package database

import (
	"time"

	"github.com/gracelabs/verification-service/internal/models"
	"github.com/gracelabs/verification-service/internal/repository/memory"
	"github.com/sirupsen/logrus"
)

// Seed fills the in-process stores with the sample dataset used in memory
// mode: one active customer with a pending streaming charge, a small payee
// registry and a complaints ledger entry for a known bad merchant.
func Seed(billing *memory.BillingStore, complaints *memory.ComplaintStore) {
	lastPayment := time.Now().Add(-12 * 24 * time.Hour)

	billing.AddCustomer(models.Customer{
		ID:            "12345678901",
		Name:          "João Silva",
		Status:        "active",
		LastPaymentAt: &lastPayment,
	})
	billing.AddCustomer(models.Customer{
		ID:     "98765432100",
		Name:   "Maria Souza",
		Status: "active",
	})

	billing.AddCharge(models.Charge{
		ID:         "charge-001",
		CustomerID: "12345678901",
		Amount:     89.90,
		Service:    "streaming",
		Status:     models.ChargeStatusPending,
		DueDate:    time.Now().Add(14 * 24 * time.Hour),
	})
	billing.AddCharge(models.Charge{
		ID:         "charge-002",
		CustomerID: "12345678901",
		Amount:     129.90,
		Service:    "internet",
		Status:     models.ChargeStatusPending,
		DueDate:    time.Now().Add(20 * 24 * time.Hour),
	})

	billing.AddPayee(models.Payee{Name: "Acme Services", TaxID: "12.345.678/0001-00", Status: "active"})
	billing.AddPayee(models.Payee{Name: "Acme Streaming", TaxID: "12.345.678/0002-00", Status: "active"})
	billing.AddPayee(models.Payee{Name: "Telecom Brasil", TaxID: "98.765.432/0001-00", Status: "active"})

	complaints.AddComplaint(models.ComplaintRecord{
		PayeeName:  "Empresa Falsa LTDA",
		Complaints: 8,
		Reason:     "cobrança indevida",
	})

	logrus.Info("memory stores seeded with sample billing and complaint data")
}

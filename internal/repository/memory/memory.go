// Package memory provides mutex-guarded in-process implementations of the
// pipeline's store interfaces. They back local development when no database
// is configured, and the package-level tests of the pipeline components.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gracelabs/verification-service/internal/models"
)

type BillingStore struct {
	mu        sync.RWMutex
	customers map[string]models.Customer
	charges   map[string][]models.Charge
	payees    []models.Payee
}

func NewBillingStore() *BillingStore {
	return &BillingStore{
		customers: make(map[string]models.Customer),
		charges:   make(map[string][]models.Charge),
	}
}

func (s *BillingStore) AddCustomer(customer models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

func (s *BillingStore) AddCharge(charge models.Charge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if charge.ID == "" {
		charge.ID = uuid.New().String()
	}
	s.charges[charge.CustomerID] = append(s.charges[charge.CustomerID], charge)
}

func (s *BillingStore) AddPayee(payee models.Payee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payees = append(s.payees, payee)
}

func (s *BillingStore) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[customerID]
	if !ok {
		return nil, nil
	}

	return &customer, nil
}

func (s *BillingStore) GetPendingCharges(ctx context.Context, customerID string) ([]models.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []models.Charge
	for _, charge := range s.charges[customerID] {
		if charge.Status == models.ChargeStatusPending {
			pending = append(pending, charge)
		}
	}

	return pending, nil
}

func (s *BillingStore) GetPayees(ctx context.Context) ([]models.Payee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payees := make([]models.Payee, len(s.payees))
	copy(payees, s.payees)

	return payees, nil
}

// ScamStore holds confirmed scam signatures keyed by fingerprint. Reads from
// concurrent verifications and writes from scam reports are serialized with a
// single-writer/multiple-reader lock; concurrent reports of the same
// fingerprint each bump the counter exactly once.
type ScamStore struct {
	mu         sync.RWMutex
	signatures map[string]models.ScamSignature
}

func NewScamStore() *ScamStore {
	return &ScamStore{
		signatures: make(map[string]models.ScamSignature),
	}
}

func (s *ScamStore) GetSignature(ctx context.Context, fingerprint string) (*models.ScamSignature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	signature, ok := s.signatures[fingerprint]
	if !ok {
		return nil, nil
	}

	return &signature, nil
}

func (s *ScamStore) RecordSignature(ctx context.Context, fingerprint string, kind models.FingerprintKind) (models.ScamSignature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	signature, ok := s.signatures[fingerprint]
	if !ok {
		signature = models.ScamSignature{
			ID:          uuid.New().String(),
			Fingerprint: fingerprint,
			Kind:        kind,
			FirstSeenAt: now,
		}
	}

	signature.ReportCount++
	signature.LastSeenAt = now
	s.signatures[fingerprint] = signature

	return signature, nil
}

type ComplaintStore struct {
	mu      sync.RWMutex
	records []models.ComplaintRecord
}

func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{}
}

func (s *ComplaintStore) AddComplaint(record models.ComplaintRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	s.records = append(s.records, record)
}

func (s *ComplaintStore) ComplaintsForPayee(ctx context.Context, payeeName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(payeeName)

	total := 0
	for _, record := range s.records {
		if strings.Contains(name, strings.ToLower(record.PayeeName)) {
			total += record.Complaints
		}
	}

	return total, nil
}

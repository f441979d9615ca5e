package posgrest

import (
	"context"
	"errors"

	"github.com/gracelabs/verification-service/internal/models"
	"gorm.io/gorm"
)

// BillingStore is the GORM-backed view of customers, charges and the
// legitimate-payee registry. A missing customer is (nil, nil); only the
// database being unreachable surfaces as an error.
type BillingStore struct {
	db *gorm.DB
}

func NewBillingStore(db *gorm.DB) *BillingStore {
	return &BillingStore{db: db}
}

func (s *BillingStore) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Where("id = ?", customerID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (s *BillingStore) GetPendingCharges(ctx context.Context, customerID string) ([]models.Charge, error) {
	var charges []models.Charge
	err := s.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, models.ChargeStatusPending).
		Find(&charges).Error
	if err != nil {
		return nil, err
	}

	return charges, nil
}

func (s *BillingStore) GetPayees(ctx context.Context) ([]models.Payee, error) {
	var payees []models.Payee
	if err := s.db.WithContext(ctx).Find(&payees).Error; err != nil {
		return nil, err
	}

	return payees, nil
}

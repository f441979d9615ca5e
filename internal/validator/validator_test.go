package validator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gracelabs/verification-service/internal/models"
	"github.com/gracelabs/verification-service/internal/repository/memory"
	"github.com/gracelabs/verification-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(lastPayment time.Time) *memory.BillingStore {
	store := memory.NewBillingStore()
	store.AddCustomer(models.Customer{
		ID:            "12345678901",
		Name:          "João Silva",
		Status:        "active",
		LastPaymentAt: &lastPayment,
	})
	store.AddCharge(models.Charge{
		CustomerID: "12345678901",
		Amount:     89.90,
		Service:    "streaming",
		Status:     models.ChargeStatusPending,
		DueDate:    time.Now().AddDate(0, 0, 20),
	})
	store.AddPayee(models.Payee{Name: "Acme Services", Status: "active"})
	store.AddPayee(models.Payee{Name: "Acme Streaming", Status: "active"})

	return store
}

func amount(v float64) *float64 {
	return &v
}

func TestValidate_MatchingCharge(t *testing.T) {
	store := seededStore(time.Now().AddDate(0, 0, -20))
	v := validator.NewValidator(store, validator.DefaultConfig())

	doc := models.ExtractedDocument{
		PayeeName: "Acme Services",
		Amount:    amount(89.90),
		RawText:   "boleto",
	}

	report := v.Validate(context.Background(), doc, "12345678901")

	assert.False(t, report.Unavailable)
	assert.Equal(t, 95, report.Checks[models.CheckAmountMatch].Confidence)
	assert.NotEmpty(t, report.MatchedChargeID)
	assert.Equal(t, 90, report.Checks[models.CheckPayeeRegistered].Confidence)
	assert.Equal(t, 80, report.Checks[models.CheckPendingCharge].Confidence)
	assert.Equal(t, 85, report.Checks[models.CheckPaymentRecency].Confidence)
	assert.Empty(t, report.Alerts)
}

func TestValidate_CustomerNotFound(t *testing.T) {
	store := seededStore(time.Now())
	v := validator.NewValidator(store, validator.DefaultConfig())

	report := v.Validate(context.Background(), models.ExtractedDocument{}, "00000000000")

	assert.False(t, report.Unavailable)
	for name, check := range report.Checks {
		assert.Equalf(t, 0, check.Confidence, "check %s", name)
	}
	require.Len(t, report.Alerts, 1)
	assert.Contains(t, report.Alerts[0].Message, "customer not found")
	assert.Equal(t, models.SeverityHigh, report.Alerts[0].Severity)
}

func TestValidate_NearMissPayeeScoredBelowUnrecognized(t *testing.T) {
	store := seededStore(time.Now().AddDate(0, 0, -20))
	v := validator.NewValidator(store, validator.DefaultConfig())

	nearMiss := v.Validate(context.Background(), models.ExtractedDocument{PayeeName: "Acme Service"}, "12345678901")
	unknown := v.Validate(context.Background(), models.ExtractedDocument{PayeeName: "Total Different Co"}, "12345678901")

	nearMissCheck := nearMiss.Checks[models.CheckPayeeRegistered]
	unknownCheck := unknown.Checks[models.CheckPayeeRegistered]

	assert.Equal(t, "payee_near_miss", nearMissCheck.Status)
	assert.Equal(t, "payee_unrecognized", unknownCheck.Status)
	assert.Less(t, nearMissCheck.Confidence, unknownCheck.Confidence)
}

func TestValidate_AmountBands(t *testing.T) {
	store := seededStore(time.Now().AddDate(0, 0, -20))
	v := validator.NewValidator(store, validator.DefaultConfig())

	tests := []struct {
		name       string
		amount     *float64
		confidence int
		status     string
	}{
		{"exact match", amount(89.90), 95, "amount_matches_charge"},
		{"tolerance match", amount(89.905), 95, "amount_matches_charge"},
		{"inside expected band", amount(120.00), 30, "amount_unmatched"},
		{"wildly out of range", amount(5000.00), 10, "amount_out_of_band"},
		{"missing amount", nil, 10, "amount_not_identified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := v.Validate(context.Background(), models.ExtractedDocument{Amount: tt.amount}, "12345678901")

			check := report.Checks[models.CheckAmountMatch]
			assert.Equal(t, tt.confidence, check.Confidence)
			assert.Equal(t, tt.status, check.Status)
		})
	}
}

func TestValidate_RecencyBuckets(t *testing.T) {
	tests := []struct {
		name       string
		daysAgo    int
		noHistory  bool
		confidence int
	}{
		{"recent payment", 20, false, 85},
		{"moderate history", 45, false, 70},
		{"stale history", 90, false, 40},
		{"no history", 0, true, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewBillingStore()
			customer := models.Customer{ID: "c1", Name: "Maria Santos"}
			if !tt.noHistory {
				last := time.Now().AddDate(0, 0, -tt.daysAgo)
				customer.LastPaymentAt = &last
			}
			store.AddCustomer(customer)

			v := validator.NewValidator(store, validator.DefaultConfig())
			report := v.Validate(context.Background(), models.ExtractedDocument{}, "c1")

			assert.Equal(t, tt.confidence, report.Checks[models.CheckPaymentRecency].Confidence)
		})
	}
}

func TestValidate_AlertsGeneratedAndSorted(t *testing.T) {
	store := seededStore(time.Now().AddDate(0, 0, -20))
	v := validator.NewValidator(store, validator.DefaultConfig())

	// Near-miss payee (confidence 5, high severity) and an unmatched amount
	// inside the band (confidence 30, medium severity).
	doc := models.ExtractedDocument{
		PayeeName: "Acme Service",
		Amount:    amount(120.00),
	}

	report := v.Validate(context.Background(), doc, "12345678901")

	require.NotEmpty(t, report.Alerts)
	assert.Equal(t, models.SeverityHigh, report.Alerts[0].Severity)
	assert.Contains(t, report.Alerts[0].Message, "resembles registered payee")

	for i := 1; i < len(report.Alerts); i++ {
		assert.LessOrEqual(t, report.Alerts[i-1].Severity.Rank(), report.Alerts[i].Severity.Rank())
	}
}

type failingStore struct{}

func (failingStore) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	return nil, errors.New("billing database unreachable")
}

func (failingStore) GetPendingCharges(ctx context.Context, customerID string) ([]models.Charge, error) {
	return nil, errors.New("billing database unreachable")
}

func (failingStore) GetPayees(ctx context.Context) ([]models.Payee, error) {
	return nil, errors.New("billing database unreachable")
}

func TestValidate_StoreUnavailable(t *testing.T) {
	v := validator.NewValidator(failingStore{}, validator.DefaultConfig())

	report := v.Validate(context.Background(), models.ExtractedDocument{}, "12345678901")

	assert.True(t, report.Unavailable)
	assert.Empty(t, report.Checks)
	require.Len(t, report.Alerts, 1)
	assert.Contains(t, report.Alerts[0].Message, "could not be consulted")
}

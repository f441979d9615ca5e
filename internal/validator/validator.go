package validator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gracelabs/verification-service/internal/models"
	"github.com/sirupsen/logrus"
)

// BillingStore is the read-only view of the billing records the validator
// cross-checks against. A missing customer is (nil, nil), not an error;
// errors mean the store itself is unreachable.
type BillingStore interface {
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
	GetPendingCharges(ctx context.Context, customerID string) ([]models.Charge, error)
	GetPayees(ctx context.Context) ([]models.Payee, error)
}

type Config struct {
	AmountTolerance   float64
	ExpectedChargeMin float64
	ExpectedChargeMax float64
}

func DefaultConfig() Config {
	return Config{
		AmountTolerance:   0.01,
		ExpectedChargeMin: 50,
		ExpectedChargeMax: 200,
	}
}

// Confidence bands per check outcome.
const (
	confidenceAmountMatch     = 95
	confidencePayeeRegistered = 90
	confidenceRecentPayment   = 85
	confidenceHasCharges      = 80
	confidenceModeratePayment = 70
	confidenceOldPayment      = 40
	confidenceAmountInBand    = 30
	confidenceNoCharges       = 20
	confidenceUnrecognized    = 20
	confidenceNoHistory       = 20
	confidenceFieldMissing    = 10
	confidenceAmountOutOfBand = 10
	confidencePayeeNearMiss   = 5
)

// Alert thresholds: every check below mediumConfidence produces an alert,
// with severity raised again below lowConfidence.
const (
	lowConfidence    = 30
	mediumConfidence = 60
)

// checkOrder fixes the iteration order for alert generation; map order is not
// deterministic.
var checkOrder = []string{
	models.CheckPendingCharge,
	models.CheckPayeeRegistered,
	models.CheckAmountMatch,
	models.CheckPaymentRecency,
}

// Validator checks an extracted document against billing records: customer,
// pending charges, the legitimate-payee registry, and payment history. It
// never errors on missing or malformed input; it downgrades confidence
// instead. Only store failures surface, as an Unavailable report.
type Validator struct {
	Store  BillingStore
	Config Config
}

func NewValidator(store BillingStore, cfg Config) *Validator {
	return &Validator{
		Store:  store,
		Config: cfg,
	}
}

func (v *Validator) Validate(ctx context.Context, doc models.ExtractedDocument, customerID string) models.ValidationReport {
	report := models.ValidationReport{
		Checks: make(map[string]models.FieldCheck),
	}

	customer, err := v.Store.GetCustomer(ctx, customerID)
	if err != nil {
		return v.unavailable(err)
	}

	if customer == nil {
		for _, name := range checkOrder {
			report.Checks[name] = models.FieldCheck{
				Status:     "customer_not_found",
				Confidence: 0,
				Message:    "customer not found in billing records",
			}
		}
		report.Alerts = []models.Alert{{
			Message:  "customer not found in billing records",
			Severity: models.SeverityHigh,
		}}
		return report
	}

	charges, err := v.Store.GetPendingCharges(ctx, customerID)
	if err != nil {
		return v.unavailable(err)
	}

	payees, err := v.Store.GetPayees(ctx)
	if err != nil {
		return v.unavailable(err)
	}

	report.Checks[models.CheckPendingCharge] = v.checkPendingCharges(charges)
	report.Checks[models.CheckPayeeRegistered] = v.checkPayee(doc.PayeeName, payees)

	amountCheck, matchedChargeID := v.checkAmount(doc.Amount, charges)
	report.Checks[models.CheckAmountMatch] = amountCheck
	report.MatchedChargeID = matchedChargeID

	report.Checks[models.CheckPaymentRecency] = v.checkRecency(customer.LastPaymentAt)

	report.Alerts = buildAlerts(report.Checks)

	return report
}

func (v *Validator) unavailable(err error) models.ValidationReport {
	logrus.Errorf("billing store unavailable: %s", err.Error())

	return models.ValidationReport{
		Checks:      make(map[string]models.FieldCheck),
		Unavailable: true,
		Alerts: []models.Alert{{
			Message:  "billing records could not be consulted",
			Severity: models.SeverityMedium,
		}},
	}
}

func (v *Validator) checkPendingCharges(charges []models.Charge) models.FieldCheck {
	if len(charges) == 0 {
		return models.FieldCheck{
			Status:     "no_pending_charges",
			Confidence: confidenceNoCharges,
			Message:    "customer has no pending charges",
		}
	}

	return models.FieldCheck{
		Status:     "pending_charges_found",
		Confidence: confidenceHasCharges,
		Message:    fmt.Sprintf("customer has %d pending charge(s)", len(charges)),
	}
}

func (v *Validator) checkAmount(amount *float64, charges []models.Charge) (models.FieldCheck, string) {
	if amount == nil {
		return models.FieldCheck{
			Status:     "amount_not_identified",
			Confidence: confidenceFieldMissing,
			Message:    "amount could not be read from the document",
		}, ""
	}

	for _, charge := range charges {
		diff := charge.Amount - *amount
		if diff < 0 {
			diff = -diff
		}
		if diff < v.Config.AmountTolerance {
			return models.FieldCheck{
				Status:     "amount_matches_charge",
				Confidence: confidenceAmountMatch,
				Message:    fmt.Sprintf("amount R$ %.2f matches a pending charge", *amount),
			}, charge.ID
		}
	}

	if *amount >= v.Config.ExpectedChargeMin && *amount <= v.Config.ExpectedChargeMax {
		return models.FieldCheck{
			Status:     "amount_unmatched",
			Confidence: confidenceAmountInBand,
			Message:    fmt.Sprintf("amount R$ %.2f does not match any pending charge", *amount),
		}, ""
	}

	return models.FieldCheck{
		Status:     "amount_out_of_band",
		Confidence: confidenceAmountOutOfBand,
		Message:    fmt.Sprintf("amount R$ %.2f is outside the expected charge band", *amount),
	}, ""
}

func (v *Validator) checkPayee(payeeName string, payees []models.Payee) models.FieldCheck {
	if strings.TrimSpace(payeeName) == "" {
		return models.FieldCheck{
			Status:     "payee_not_identified",
			Confidence: confidenceFieldMissing,
			Message:    "payee could not be read from the document",
		}
	}

	docName := strings.ToLower(payeeName)

	for _, payee := range payees {
		if strings.Contains(docName, strings.ToLower(payee.Name)) {
			return models.FieldCheck{
				Status:     "payee_registered",
				Confidence: confidencePayeeRegistered,
				Message:    fmt.Sprintf("payee %q is a registered payee", payee.Name),
			}
		}
	}

	// A near-miss of a registered name is evidence of impersonation, which
	// is worse than a name we simply do not know.
	for _, payee := range payees {
		if levenshtein(docName, strings.ToLower(payee.Name)) <= 2 {
			return models.FieldCheck{
				Status:     "payee_near_miss",
				Confidence: confidencePayeeNearMiss,
				Message:    fmt.Sprintf("payee %q resembles registered payee %q but does not match", payeeName, payee.Name),
			}
		}
	}

	return models.FieldCheck{
		Status:     "payee_unrecognized",
		Confidence: confidenceUnrecognized,
		Message:    fmt.Sprintf("payee %q is not a registered payee", payeeName),
	}
}

func (v *Validator) checkRecency(lastPaymentAt *time.Time) models.FieldCheck {
	if lastPaymentAt == nil {
		return models.FieldCheck{
			Status:     "no_payment_history",
			Confidence: confidenceNoHistory,
			Message:    "customer has no payment history",
		}
	}

	days := int(time.Since(*lastPaymentAt).Hours() / 24)

	switch {
	case days <= 30:
		return models.FieldCheck{
			Status:     "recent_payment",
			Confidence: confidenceRecentPayment,
			Message:    fmt.Sprintf("last payment %d day(s) ago", days),
		}
	case days <= 60:
		return models.FieldCheck{
			Status:     "moderate_payment_history",
			Confidence: confidenceModeratePayment,
			Message:    fmt.Sprintf("last payment %d day(s) ago", days),
		}
	default:
		return models.FieldCheck{
			Status:     "stale_payment_history",
			Confidence: confidenceOldPayment,
			Message:    fmt.Sprintf("last payment %d day(s) ago", days),
		}
	}
}

func buildAlerts(checks map[string]models.FieldCheck) []models.Alert {
	var alerts []models.Alert

	for _, name := range checkOrder {
		check, ok := checks[name]
		if !ok || check.Confidence >= mediumConfidence {
			continue
		}

		severity := models.SeverityMedium
		if check.Confidence < lowConfidence {
			severity = models.SeverityHigh
		}

		alerts = append(alerts, models.Alert{
			Message:  check.Message,
			Severity: severity,
		})
	}

	sortAlerts(alerts)

	return alerts
}

func sortAlerts(alerts []models.Alert) {
	// Insertion sort keeps equal severities in check order.
	for i := 1; i < len(alerts); i++ {
		for j := i; j > 0 && alerts[j].Severity.Rank() < alerts[j-1].Severity.Rank(); j-- {
			alerts[j], alerts[j-1] = alerts[j-1], alerts[j]
		}
	}
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}

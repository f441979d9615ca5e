package orchestrator

import (
	"fmt"
	"math"

	"github.com/gracelabs/verification-service/internal/models"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ExtractionWeight float64
	ValidationWeight float64
	FraudWeight      float64
	SafeCutoff       int
	ScamCutoff       int
}

// DefaultConfig weights fraud as heavily as validation so a single strong
// fraud signal can override an otherwise-clean validation. The cutoff pair is
// canonical: SAFE at or above 90, SCAM below 60, SUSPICIOUS in between.
func DefaultConfig() Config {
	return Config{
		ExtractionWeight: 0.20,
		ValidationWeight: 0.40,
		FraudWeight:      0.40,
		SafeCutoff:       90,
		ScamCutoff:       60,
	}
}

var qualityScores = map[models.ImageQuality]float64{
	models.QualityGood:   100,
	models.QualityMedium: 50,
	models.QualityPoor:   25,
}

// Orchestrator consolidates the validation and fraud reports plus extraction
// quality into a single verdict. It is the only component aware of the other
// three.
type Orchestrator struct {
	Config Config
}

func NewOrchestrator(cfg Config) *Orchestrator {
	return &Orchestrator{Config: cfg}
}

// Consolidate computes the weighted confidence score, maps it onto the
// SAFE/SUSPICIOUS/SCAM ladder and derives the merged alert list and the
// recommendation catalogue for the status. Degraded upstream reports are
// reweighted, never fatal; an error here means an upstream component broke
// its contract (a confidence or risk outside 0-100).
func (o *Orchestrator) Consolidate(validation models.ValidationReport, fraud models.FraudReport, quality models.ImageQuality) (models.ConsolidatedVerdict, error) {
	if err := checkContracts(validation, fraud); err != nil {
		return models.ConsolidatedVerdict{}, err
	}

	confidence := o.confidence(validation, fraud, quality)
	status := o.classify(confidence)

	verdict := models.ConsolidatedVerdict{
		Confidence:      confidence,
		Status:          status,
		Summary:         summaryFor(status, confidence),
		Alerts:          mergeAlerts(validation, fraud),
		Recommendations: recommendationsFor(status),
		Actions:         actionsFor(status),
	}

	logrus.Infof("verdict consolidated: status=%s confidence=%d risk=%d", status, confidence, fraud.RiskScore)

	return verdict, nil
}

func (o *Orchestrator) confidence(validation models.ValidationReport, fraud models.FraudReport, quality models.ImageQuality) int {
	qualityScore, ok := qualityScores[quality]
	if !ok {
		qualityScore = qualityScores[models.QualityPoor]
	}

	validationScore := meanConfidence(validation.Checks)
	fraudScore := float64(100 - fraud.RiskScore)

	wExtraction := o.Config.ExtractionWeight
	wValidation := o.Config.ValidationWeight
	wFraud := o.Config.FraudWeight

	// An unavailable report loses its vote; the remaining weights are
	// scaled back up so the missing input is not counted as zero.
	if validation.Unavailable {
		wValidation = 0
	}
	if fraud.Unavailable {
		wFraud = 0
	}

	total := wExtraction + wValidation + wFraud
	if total == 0 {
		return 0
	}

	score := (wExtraction*qualityScore + wValidation*validationScore + wFraud*fraudScore) / total

	confidence := int(math.Round(score))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return confidence
}

func (o *Orchestrator) classify(confidence int) models.VerificationStatus {
	switch {
	case confidence >= o.Config.SafeCutoff:
		return models.StatusSafe
	case confidence >= o.Config.ScamCutoff:
		return models.StatusSuspicious
	default:
		return models.StatusScam
	}
}

// meanConfidence averages the per-check confidences. An empty check map means
// the document could not be matched at all and scores zero.
func meanConfidence(checks map[string]models.FieldCheck) float64 {
	if len(checks) == 0 {
		return 0
	}

	sum := 0
	for _, check := range checks {
		sum += check.Confidence
	}

	return float64(sum) / float64(len(checks))
}

func checkContracts(validation models.ValidationReport, fraud models.FraudReport) error {
	for name, check := range validation.Checks {
		if check.Confidence < 0 || check.Confidence > 100 {
			return fmt.Errorf("validation check %q has confidence %d outside 0-100", name, check.Confidence)
		}
	}

	for name, signal := range fraud.Signals {
		if signal.Risk < 0 || signal.Risk > 100 {
			return fmt.Errorf("fraud signal %q has risk %d outside 0-100", name, signal.Risk)
		}
	}

	if fraud.RiskScore < 0 || fraud.RiskScore > 100 {
		return fmt.Errorf("fraud risk score %d outside 0-100", fraud.RiskScore)
	}

	return nil
}

// mergeAlerts combines both alert lists, validation first, then stable-sorts
// by severity so ties keep the validation-then-fraud stage order.
func mergeAlerts(validation models.ValidationReport, fraud models.FraudReport) []models.Alert {
	merged := make([]models.Alert, 0, len(validation.Alerts)+len(fraud.Alerts))

	for _, alert := range validation.Alerts {
		alert.Source = "validation"
		merged = append(merged, alert)
	}
	for _, alert := range fraud.Alerts {
		alert.Source = "fraud"
		merged = append(merged, alert)
	}

	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j].Severity.Rank() < merged[j-1].Severity.Rank(); j-- {
			merged[j], merged[j-1] = merged[j-1], merged[j]
		}
	}

	return merged
}

func summaryFor(status models.VerificationStatus, confidence int) string {
	switch status {
	case models.StatusSafe:
		return fmt.Sprintf("Payment looks safe (confidence %d%%). The charge was verified against your billing records.", confidence)
	case models.StatusSuspicious:
		return fmt.Sprintf("This charge looks suspicious (confidence %d%%). Verify directly with support before paying.", confidence)
	default:
		return fmt.Sprintf("Scam detected (confidence %d%%). Do not pay this charge and report it immediately.", confidence)
	}
}

// recommendationsFor is a fixed catalogue keyed only by status; the same
// recommendations come back regardless of which signals produced the status.
func recommendationsFor(status models.VerificationStatus) []models.Recommendation {
	switch status {
	case models.StatusSafe:
		return []models.Recommendation{
			{Title: "Pay with confidence", Description: "You can proceed with this payment", Priority: models.SeverityLow},
			{Title: "Keep the receipt", Description: "Save the payment receipt for your records", Priority: models.SeverityLow},
		}
	case models.StatusSuspicious:
		return []models.Recommendation{
			{Title: "Verify with support", Description: "Contact support before paying this charge", Priority: models.SeverityHigh},
			{Title: "Confirm the charge data", Description: "Check amount and payee directly with the service provider", Priority: models.SeverityMedium},
		}
	default:
		return []models.Recommendation{
			{Title: "Do not pay", Description: "This charge is fraudulent - do not proceed with the payment", Priority: models.SeverityCritical},
			{Title: "Report the fraud", Description: "Report this scam to help protect other users", Priority: models.SeverityHigh},
			{Title: "Contact support", Description: "Get in touch with support immediately", Priority: models.SeverityHigh},
		}
	}
}

// actionsFor emits the chat-button payload: at most three id/label pairs.
func actionsFor(status models.VerificationStatus) []models.Action {
	switch status {
	case models.StatusSafe:
		return []models.Action{
			{ID: "pay_now", Label: "Pay now"},
			{ID: "save_receipt", Label: "Save receipt"},
			{ID: "view_report", Label: "View full report"},
		}
	case models.StatusSuspicious:
		return []models.Action{
			{ID: "contact_support", Label: "Verify with support"},
			{ID: "review_details", Label: "Review charge details"},
			{ID: "view_report", Label: "View full report"},
		}
	default:
		return []models.Action{
			{ID: "report_scam", Label: "Report fraud"},
			{ID: "contact_support", Label: "Contact support"},
			{ID: "view_report", Label: "View full report"},
		}
	}
}

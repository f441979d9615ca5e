package detector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gracelabs/verification-service/internal/models"
	"github.com/sirupsen/logrus"
)

// ScamStore holds confirmed scam signatures keyed by one-way fingerprints.
// RecordSignature is the only mutator and must be safe under concurrent
// reports of the same fingerprint.
type ScamStore interface {
	GetSignature(ctx context.Context, fingerprint string) (*models.ScamSignature, error)
	RecordSignature(ctx context.Context, fingerprint string, kind models.FingerprintKind) (models.ScamSignature, error)
}

// ComplaintStore is the external complaints ledger, read-only here.
type ComplaintStore interface {
	ComplaintsForPayee(ctx context.Context, payeeName string) (int, error)
}

type Config struct {
	HighValueThreshold float64
	LowValueThreshold  float64
	RoundScamValues    []float64
	NightStartHour     int
	NightEndHour       int
	PayeeDenylist      []string
}

func DefaultConfig() Config {
	return Config{
		HighValueThreshold: 500,
		LowValueThreshold:  5,
		RoundScamValues:    []float64{300, 500, 1000},
		NightStartHour:     3,
		NightEndHour:       5,
		PayeeDenylist:      []string{"banco central", "receita federal", "gov.br", "serasa"},
	}
}

// Risk increments per signal. Signals are independent and additive; only a
// known-scam match may reach the cap on its own, because a previously
// confirmed scam is conclusive.
const (
	riskKnownScamBoth   = 100
	riskKnownScamSingle = 70
	riskDenylistPayee   = 25
	riskPayeeHasDigits  = 15
	riskPayeeTooShort   = 10
	suspiciousPayeeCap  = 40
	riskHighValue       = 20
	riskLowValue        = 15
	riskRoundValue      = 25
	riskUrgencyLanguage = 20
	riskShortenedURL    = 25
	riskCharDensity     = 10
	riskNightHour       = 10
	riskPerComplaint    = 5
	complaintsCap       = 40
	maxRiskScore        = 100
)

// Alert thresholds over a signal's individual risk.
const (
	criticalRisk = 80
	highRisk     = 50
	mediumRisk   = 10
)

const minPayeeNameLen = 5

// ErrNoFingerprints is returned by ReportScam when the report carries neither
// a payee name nor a payment code, so there is nothing to record.
var ErrNoFingerprints = errors.New("scam report carries no fingerprintable fields")

var urlShortenerHosts = []string{
	"bit.ly", "tinyurl.com", "t.co", "is.gd", "cutt.ly", "encurtador.com.br",
}

var signalOrder = []string{
	models.SignalKnownScam,
	models.SignalSuspiciousPayee,
	models.SignalSuspiciousAmount,
	models.SignalSuspiciousText,
	models.SignalSuspiciousHour,
	models.SignalComplaintRecords,
}

// Detector runs independent fraud heuristics over an extracted document and
// the scam-signature store. It never inspects billing records; that is the
// validator's job, and the two must stay independent.
type Detector struct {
	Scams      ScamStore
	Complaints ComplaintStore
	Config     Config

	// Now is injectable so the time-of-day signal is testable.
	Now func() time.Time
}

func NewDetector(scams ScamStore, complaints ComplaintStore, cfg Config) *Detector {
	return &Detector{
		Scams:      scams,
		Complaints: complaints,
		Config:     cfg,
		Now:        time.Now,
	}
}

func (d *Detector) Detect(ctx context.Context, doc models.ExtractedDocument, customerID string) models.FraudReport {
	report := models.FraudReport{
		Signals: make(map[string]models.FraudSignal),
	}

	knownScam, err := d.checkKnownScam(ctx, doc)
	if err != nil {
		logrus.Errorf("scam store unavailable: %s", err.Error())
		report.Unavailable = true
		report.Alerts = []models.Alert{{
			Message:  "scam signature records could not be consulted",
			Severity: models.SeverityMedium,
		}}
		return report
	}

	report.Signals[models.SignalKnownScam] = knownScam
	report.Signals[models.SignalSuspiciousPayee] = d.checkSuspiciousPayee(doc.PayeeName)
	report.Signals[models.SignalSuspiciousAmount] = d.checkSuspiciousAmount(doc.Amount)
	report.Signals[models.SignalSuspiciousText] = d.checkTextPatterns(doc)
	report.Signals[models.SignalSuspiciousHour] = d.checkTimeOfDay()
	report.Signals[models.SignalComplaintRecords] = d.checkComplaints(ctx, doc.PayeeName)

	report.RiskScore = aggregateRisk(report.Signals)
	report.Alerts = buildAlerts(report.Signals)

	return report
}

// ReportScam adds the fingerprints of a confirmed-fraudulent document to the
// scam store so future checks score them as known scams. It returns the
// recorded fingerprints. Duplicate reports of the same fingerprint only
// increment its report counter.
func (d *Detector) ReportScam(ctx context.Context, report models.ScamReport) ([]string, error) {
	type entry struct {
		value string
		kind  models.FingerprintKind
	}

	var entries []entry
	if strings.TrimSpace(report.PayeeName) != "" {
		entries = append(entries, entry{report.PayeeName, models.FingerprintPayee})
	}
	if code := paymentCode(report.Barcode, report.PixKey); code != "" {
		entries = append(entries, entry{code, models.FingerprintCode})
	}

	if len(entries) == 0 {
		return nil, ErrNoFingerprints
	}

	fingerprints := make([]string, 0, len(entries))
	for _, e := range entries {
		fingerprint := Fingerprint(e.value)
		signature, err := d.Scams.RecordSignature(ctx, fingerprint, e.kind)
		if err != nil {
			return nil, fmt.Errorf("record scam signature: %w", err)
		}

		logrus.Infof("scam signature recorded: kind=%s reports=%d", e.kind, signature.ReportCount)
		fingerprints = append(fingerprints, fingerprint)
	}

	return fingerprints, nil
}

func (d *Detector) checkKnownScam(ctx context.Context, doc models.ExtractedDocument) (models.FraudSignal, error) {
	payeeHit, payeeReports, err := d.lookup(ctx, doc.PayeeName)
	if err != nil {
		return models.FraudSignal{}, err
	}

	codeHit, codeReports, err := d.lookup(ctx, paymentCode(doc.Barcode, doc.PixKey))
	if err != nil {
		return models.FraudSignal{}, err
	}

	switch {
	case payeeHit && codeHit:
		return models.FraudSignal{
			Risk:    riskKnownScamBoth,
			Message: fmt.Sprintf("payee and payment code both match confirmed scam reports (%d report(s))", payeeReports+codeReports),
		}, nil
	case payeeHit:
		return models.FraudSignal{
			Risk:    riskKnownScamSingle,
			Message: fmt.Sprintf("payee matches a confirmed scam signature (%d report(s))", payeeReports),
		}, nil
	case codeHit:
		return models.FraudSignal{
			Risk:    riskKnownScamSingle,
			Message: fmt.Sprintf("payment code matches a confirmed scam signature (%d report(s))", codeReports),
		}, nil
	default:
		return models.FraudSignal{
			Message: "no match against confirmed scam signatures",
		}, nil
	}
}

func (d *Detector) lookup(ctx context.Context, value string) (bool, int, error) {
	if strings.TrimSpace(value) == "" {
		return false, 0, nil
	}

	signature, err := d.Scams.GetSignature(ctx, Fingerprint(value))
	if err != nil {
		return false, 0, err
	}
	if signature == nil {
		return false, 0, nil
	}

	return true, signature.ReportCount, nil
}

func (d *Detector) checkSuspiciousPayee(payeeName string) models.FraudSignal {
	name := strings.TrimSpace(payeeName)
	if name == "" {
		return models.FraudSignal{Message: "payee not identified"}
	}

	risk := 0
	var reasons []string

	lower := strings.ToLower(name)
	for _, entry := range d.Config.PayeeDenylist {
		if strings.Contains(lower, entry) {
			risk += riskDenylistPayee
			reasons = append(reasons, fmt.Sprintf("name invokes %q", entry))
			break
		}
	}

	if strings.IndexFunc(name, unicode.IsDigit) >= 0 {
		risk += riskPayeeHasDigits
		reasons = append(reasons, "name contains digits")
	}

	if len([]rune(name)) < minPayeeNameLen {
		risk += riskPayeeTooShort
		reasons = append(reasons, "name is implausibly short")
	}

	if risk == 0 {
		return models.FraudSignal{Message: "payee name shows no suspicious traits"}
	}

	if risk > suspiciousPayeeCap {
		risk = suspiciousPayeeCap
	}

	return models.FraudSignal{
		Risk:    risk,
		Message: fmt.Sprintf("suspicious payee: %s", strings.Join(reasons, "; ")),
	}
}

func (d *Detector) checkSuspiciousAmount(amount *float64) models.FraudSignal {
	if amount == nil {
		return models.FraudSignal{Message: "amount not identified"}
	}

	risk := 0
	var reasons []string

	if *amount > d.Config.HighValueThreshold {
		risk += riskHighValue
		reasons = append(reasons, fmt.Sprintf("R$ %.2f is above the high-value threshold", *amount))
	}
	if *amount < d.Config.LowValueThreshold {
		risk += riskLowValue
		reasons = append(reasons, fmt.Sprintf("R$ %.2f is below the low-value threshold", *amount))
	}
	for _, round := range d.Config.RoundScamValues {
		diff := *amount - round
		if diff < 0 {
			diff = -diff
		}
		if diff < 0.001 {
			risk += riskRoundValue
			reasons = append(reasons, fmt.Sprintf("R$ %.2f is a round value typical of scams", *amount))
			break
		}
	}

	if risk == 0 {
		return models.FraudSignal{Message: "amount shows no suspicious traits"}
	}

	return models.FraudSignal{
		Risk:    risk,
		Message: strings.Join(reasons, "; "),
	}
}

func (d *Detector) checkTextPatterns(doc models.ExtractedDocument) models.FraudSignal {
	risk := 0
	var reasons []string

	if doc.SuspiciousLanguage {
		risk += riskUrgencyLanguage
		reasons = append(reasons, "urgency or pressure vocabulary present")
	}

	lower := strings.ToLower(doc.RawText)
	for _, host := range urlShortenerHosts {
		if strings.Contains(lower, host) {
			risk += riskShortenedURL
			reasons = append(reasons, "shortened or obfuscated URL present")
			break
		}
	}

	if doc.PossiblyTampered {
		risk += riskCharDensity
		reasons = append(reasons, "special-character density suggests tampering")
	}

	if risk == 0 {
		return models.FraudSignal{Message: "text shows no suspicious patterns"}
	}

	return models.FraudSignal{
		Risk:    risk,
		Message: strings.Join(reasons, "; "),
	}
}

// checkTimeOfDay models that automated scam campaigns often fire during
// low-vigilance hours. It is a weak signal and carries the smallest weight.
func (d *Detector) checkTimeOfDay() models.FraudSignal {
	hour := d.Now().Hour()

	if hour >= d.Config.NightStartHour && hour <= d.Config.NightEndHour {
		return models.FraudSignal{
			Risk:    riskNightHour,
			Message: fmt.Sprintf("verification requested at %02d:00, during low-vigilance hours", hour),
		}
	}

	return models.FraudSignal{
		Message: fmt.Sprintf("verification requested at %02d:00", hour),
	}
}

func (d *Detector) checkComplaints(ctx context.Context, payeeName string) models.FraudSignal {
	if strings.TrimSpace(payeeName) == "" {
		return models.FraudSignal{Message: "payee not identified"}
	}

	count, err := d.Complaints.ComplaintsForPayee(ctx, payeeName)
	if err != nil {
		// The complaints ledger is a supporting source; a failure degrades
		// this one signal instead of the whole report.
		logrus.Warnf("complaints ledger unavailable: %s", err.Error())
		return models.FraudSignal{Message: "complaints ledger could not be consulted"}
	}

	if count == 0 {
		return models.FraudSignal{Message: "no complaints on record for this payee"}
	}

	risk := count * riskPerComplaint
	if risk > complaintsCap {
		risk = complaintsCap
	}

	return models.FraudSignal{
		Risk:    risk,
		Message: fmt.Sprintf("payee has %d complaint(s) on record", count),
	}
}

func aggregateRisk(signals map[string]models.FraudSignal) int {
	total := 0
	for _, signal := range signals {
		if signal.Risk > 0 {
			total += signal.Risk
		}
	}

	if total > maxRiskScore {
		total = maxRiskScore
	}

	return total
}

func buildAlerts(signals map[string]models.FraudSignal) []models.Alert {
	var alerts []models.Alert

	for _, name := range signalOrder {
		signal, ok := signals[name]
		if !ok || signal.Risk < mediumRisk {
			continue
		}

		severity := models.SeverityMedium
		switch {
		case signal.Risk >= criticalRisk:
			severity = models.SeverityCritical
		case signal.Risk >= highRisk:
			severity = models.SeverityHigh
		}

		alerts = append(alerts, models.Alert{
			Message:  signal.Message,
			Severity: severity,
		})
	}

	sortAlerts(alerts)

	return alerts
}

func sortAlerts(alerts []models.Alert) {
	for i := 1; i < len(alerts); i++ {
		for j := i; j > 0 && alerts[j].Severity.Rank() < alerts[j-1].Severity.Rank(); j-- {
			alerts[j], alerts[j-1] = alerts[j-1], alerts[j]
		}
	}
}

func paymentCode(barcode, pixKey string) string {
	if strings.TrimSpace(barcode) != "" {
		return barcode
	}

	return pixKey
}

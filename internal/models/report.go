package models

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Rank orders severities for sorting; lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

type Alert struct {
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Validation check names.
const (
	CheckPendingCharge   = "customer_pending_charge"
	CheckPayeeRegistered = "payee_registered"
	CheckAmountMatch     = "amount_match"
	CheckPaymentRecency  = "payment_recency"
)

type FieldCheck struct {
	Status     string `json:"status"`
	Confidence int    `json:"confidence"`
	Message    string `json:"message"`
}

// ValidationReport carries the billing-record cross-checks. Empty Checks means
// the customer or document could not be matched at all, which is treated as
// lowest confidence downstream, not as an error. Unavailable marks a store
// failure; the orchestrator reweights around it.
type ValidationReport struct {
	Checks          map[string]FieldCheck `json:"checks"`
	Alerts          []Alert               `json:"alerts"`
	MatchedChargeID string                `json:"matched_charge_id,omitempty"`
	Unavailable     bool                  `json:"unavailable,omitempty"`
}

// Fraud signal names.
const (
	SignalKnownScam        = "known_scam_match"
	SignalSuspiciousPayee  = "suspicious_payee"
	SignalSuspiciousAmount = "suspicious_amount"
	SignalSuspiciousText   = "suspicious_text_pattern"
	SignalSuspiciousHour   = "suspicious_time_of_day"
	SignalComplaintRecords = "reclamation_records_match"
)

type FraudSignal struct {
	Risk    int    `json:"risk"`
	Message string `json:"message"`
}

// FraudReport aggregates independent fraud signals. RiskScore is the capped
// sum of all triggered signal risks (0-100).
type FraudReport struct {
	Signals     map[string]FraudSignal `json:"signals"`
	RiskScore   int                    `json:"risk_score"`
	Alerts      []Alert                `json:"alerts"`
	Unavailable bool                   `json:"unavailable,omitempty"`
}

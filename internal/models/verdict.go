package models

type VerificationStatus string

const (
	StatusSafe       VerificationStatus = "SAFE"
	StatusSuspicious VerificationStatus = "SUSPICIOUS"
	StatusScam       VerificationStatus = "SCAM"
)

func (s VerificationStatus) IsValid() bool {
	switch s {
	case StatusSafe, StatusSuspicious, StatusScam:
		return true
	default:
		return false
	}
}

type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Severity `json:"priority"`
}

// Action is a recommended next step rendered as a chat button by the UI
// layer. The pipeline only emits id/label pairs, at most three per verdict.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ConsolidatedVerdict is the single output of a verification. Alerts arrive
// already sorted by severity; callers must not re-sort them.
type ConsolidatedVerdict struct {
	Confidence      int                `json:"confidence"`
	Status          VerificationStatus `json:"status"`
	Summary         string             `json:"summary"`
	Alerts          []Alert            `json:"alerts"`
	Recommendations []Recommendation   `json:"recommendations"`
	Actions         []Action           `json:"actions"`
}

package models

import "time"

const (
	TopicChargeVerified = "charges.verified"
	TopicScamReported   = "scams.reported"

	// TopicScamConfirmed carries scam confirmations from the chat surface;
	// the service consumes it and feeds the signature store.
	TopicScamConfirmed = "scams.confirmed"

	TopicVerificationsDLQ = "verifications.dlq"
)

type ChargeVerifiedEvent struct {
	VerificationID string             `json:"verification_id"`
	CustomerID     string             `json:"customer_id"`
	Status         VerificationStatus `json:"status"`
	Confidence     int                `json:"confidence"`
	RiskScore      int                `json:"risk_score"`
	SourceKind     SourceKind         `json:"source_kind"`
	VerifiedAt     time.Time          `json:"verified_at"`
}

type ScamReportedEvent struct {
	CustomerID   string    `json:"customer_id"`
	Fingerprints []string  `json:"fingerprints"`
	PayeeName    string    `json:"payee_name,omitempty"`
	ReportedAt   time.Time `json:"reported_at"`
}

type DLQMessage struct {
	OriginalTopic string    `json:"original_topic"`
	Key           string    `json:"key"`
	Value         string    `json:"value"`
	Timestamp     time.Time `json:"timestamp"`
	Attempts      int       `json:"attempts"`
}

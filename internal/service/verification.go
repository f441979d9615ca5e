package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gracelabs/verification-service/internal/detector"
	"github.com/gracelabs/verification-service/internal/extractor"
	"github.com/gracelabs/verification-service/internal/metrics"
	"github.com/gracelabs/verification-service/internal/models"
	"github.com/gracelabs/verification-service/internal/orchestrator"
	"github.com/gracelabs/verification-service/internal/validator"
	"github.com/sirupsen/logrus"
)

// Publisher defines the interface for publishing events to Kafka topics.
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// VerificationService runs the full charge-verification pipeline: extraction,
// then validation and fraud detection in parallel over the same immutable
// document, then consolidation into a single verdict. It also feeds confirmed
// scams back into the detector's signature store.
type VerificationService struct {
	Extractor    *extractor.Extractor
	Validator    *validator.Validator
	Detector     *detector.Detector
	Orchestrator *orchestrator.Orchestrator
	Publisher    Publisher
}

func NewVerificationService(
	ext *extractor.Extractor,
	val *validator.Validator,
	det *detector.Detector,
	orch *orchestrator.Orchestrator,
	publisher Publisher,
) *VerificationService {
	return &VerificationService{
		Extractor:    ext,
		Validator:    val,
		Detector:     det,
		Orchestrator: orch,
		Publisher:    publisher,
	}
}

// Verify analyzes raw OCR text or a PIX payload for a customer and always
// commits to a SAFE, SUSPICIOUS or SCAM verdict. Degraded inputs and
// unavailable stores lower confidence; only a pipeline contract violation
// returns an error.
func (s *VerificationService) Verify(ctx context.Context, rawText string, kind models.SourceKind, customerID string) (models.ConsolidatedVerdict, error) {
	if !kind.IsValid() {
		kind = models.SourceDocument
	}

	doc := s.Extractor.Extract(rawText, kind)

	// Validator and detector are independent and only read the document
	// snapshot, so they can run concurrently.
	var (
		wg         sync.WaitGroup
		validation models.ValidationReport
		fraud      models.FraudReport
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		validation = s.Validator.Validate(ctx, doc, customerID)
	}()
	go func() {
		defer wg.Done()
		fraud = s.Detector.Detect(ctx, doc, customerID)
	}()
	wg.Wait()

	verdict, err := s.Orchestrator.Consolidate(validation, fraud, doc.ImageQuality)
	if err != nil {
		return models.ConsolidatedVerdict{}, err
	}

	metrics.VerificationsTotal.WithLabelValues(string(verdict.Status)).Inc()
	metrics.VerificationConfidence.Observe(float64(verdict.Confidence))
	metrics.FraudRiskScores.Observe(float64(fraud.RiskScore))

	event := models.ChargeVerifiedEvent{
		VerificationID: uuid.New().String(),
		CustomerID:     customerID,
		Status:         verdict.Status,
		Confidence:     verdict.Confidence,
		RiskScore:      fraud.RiskScore,
		SourceKind:     kind,
		VerifiedAt:     time.Now(),
	}

	// The event stream is advisory; the caller still gets the verdict when
	// the broker is down.
	if err := s.Publisher.Publish(ctx, models.TopicChargeVerified, event); err != nil {
		logrus.Errorf("Error publishing ChargeVerifiedEvent: %s", err.Error())
	}

	return verdict, nil
}

// ReportScam records a confirmed-fraudulent document in the scam-signature
// store so future verifications of the same payee or payment code score as
// known scams.
func (s *VerificationService) ReportScam(ctx context.Context, report models.ScamReport) error {
	fingerprints, err := s.Detector.ReportScam(ctx, report)
	if err != nil {
		return err
	}

	metrics.ScamReportsTotal.Inc()

	event := models.ScamReportedEvent{
		CustomerID:   report.CustomerID,
		Fingerprints: fingerprints,
		PayeeName:    report.PayeeName,
		ReportedAt:   time.Now(),
	}

	if err := s.Publisher.Publish(ctx, models.TopicScamReported, event); err != nil {
		logrus.Errorf("Error publishing ScamReportedEvent: %s", err.Error())
	}

	return nil
}

package detector_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gracelabs/verification-service/internal/detector"
	"github.com/gracelabs/verification-service/internal/models"
	"github.com/gracelabs/verification-service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector(scams *memory.ScamStore, complaints *memory.ComplaintStore, hour int) *detector.Detector {
	d := detector.NewDetector(scams, complaints, detector.DefaultConfig())
	d.Now = func() time.Time {
		return time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)
	}

	return d
}

func amount(v float64) *float64 {
	return &v
}

func TestDetect_CleanDocument(t *testing.T) {
	d := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 14)

	doc := models.ExtractedDocument{
		PayeeName: "Acme Services",
		Amount:    amount(89.90),
		RawText:   "Boleto referente ao plano de streaming mensal",
	}

	report := d.Detect(context.Background(), doc, "12345678901")

	assert.False(t, report.Unavailable)
	assert.Equal(t, 0, report.RiskScore)
	assert.Empty(t, report.Alerts)
	assert.Len(t, report.Signals, 6)
}

func TestDetect_KnownScamPayee(t *testing.T) {
	scams := memory.NewScamStore()
	d := newDetector(scams, memory.NewComplaintStore(), 14)
	ctx := context.Background()

	_, err := d.ReportScam(ctx, models.ScamReport{PayeeName: "Empresa Falsa LTDA"})
	require.NoError(t, err)

	doc := models.ExtractedDocument{PayeeName: "Empresa Falsa LTDA", RawText: "cobrança"}
	report := d.Detect(ctx, doc, "12345678901")

	assert.Equal(t, 70, report.Signals[models.SignalKnownScam].Risk)
	assert.GreaterOrEqual(t, report.RiskScore, 70)

	require.NotEmpty(t, report.Alerts)
	assert.Contains(t, report.Alerts[0].Message, "confirmed scam signature")
}

func TestDetect_KnownScamPayeeAndCode(t *testing.T) {
	scams := memory.NewScamStore()
	d := newDetector(scams, memory.NewComplaintStore(), 14)
	ctx := context.Background()

	_, err := d.ReportScam(ctx, models.ScamReport{
		PayeeName: "Empresa Falsa LTDA",
		PixKey:    "golpista@email.com",
	})
	require.NoError(t, err)

	doc := models.ExtractedDocument{
		PayeeName: "Empresa Falsa LTDA",
		PixKey:    "golpista@email.com",
		RawText:   "pix",
	}
	report := d.Detect(ctx, doc, "12345678901")

	assert.Equal(t, 100, report.Signals[models.SignalKnownScam].Risk)
	assert.Equal(t, 100, report.RiskScore)
	require.NotEmpty(t, report.Alerts)
	assert.Equal(t, models.SeverityCritical, report.Alerts[0].Severity)
}

func TestReportScam_RoundTrip(t *testing.T) {
	scams := memory.NewScamStore()
	d := newDetector(scams, memory.NewComplaintStore(), 14)
	ctx := context.Background()

	doc := models.ExtractedDocument{PayeeName: "Loja Golpe", RawText: "boleto"}

	before := d.Detect(ctx, doc, "c1")

	fingerprints, err := d.ReportScam(ctx, models.ScamReport{PayeeName: "Loja Golpe"})
	require.NoError(t, err)
	require.Len(t, fingerprints, 1)

	signature, err := scams.GetSignature(ctx, fingerprints[0])
	require.NoError(t, err)
	require.NotNil(t, signature)
	assert.Equal(t, 1, signature.ReportCount)

	after := d.Detect(ctx, doc, "c1")

	assert.GreaterOrEqual(t, after.Signals[models.SignalKnownScam].Risk, before.Signals[models.SignalKnownScam].Risk)
	assert.GreaterOrEqual(t, after.RiskScore, before.RiskScore)
}

func TestReportScam_DuplicateReportsIncrementCounter(t *testing.T) {
	scams := memory.NewScamStore()
	d := newDetector(scams, memory.NewComplaintStore(), 14)
	ctx := context.Background()

	report := models.ScamReport{PayeeName: "Loja Golpe"}

	first, err := d.ReportScam(ctx, report)
	require.NoError(t, err)
	_, err = d.ReportScam(ctx, report)
	require.NoError(t, err)

	signature, err := scams.GetSignature(ctx, first[0])
	require.NoError(t, err)
	require.NotNil(t, signature)
	assert.Equal(t, 2, signature.ReportCount)
}

func TestReportScam_ConcurrentReports(t *testing.T) {
	scams := memory.NewScamStore()
	d := newDetector(scams, memory.NewComplaintStore(), 14)
	ctx := context.Background()

	const reporters = 25

	var wg sync.WaitGroup
	for i := 0; i < reporters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.ReportScam(ctx, models.ScamReport{PayeeName: "Empresa Falsa LTDA"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	signature, err := scams.GetSignature(ctx, detector.Fingerprint("Empresa Falsa LTDA"))
	require.NoError(t, err)
	require.NotNil(t, signature)
	assert.Equal(t, reporters, signature.ReportCount)
}

func TestReportScam_NoFingerprintableFields(t *testing.T) {
	d := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 14)

	_, err := d.ReportScam(context.Background(), models.ScamReport{CustomerID: "c1"})

	assert.Error(t, err)
}

func TestDetect_SuspiciousAmounts(t *testing.T) {
	d := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 14)

	tests := []struct {
		name   string
		amount float64
		risk   int
	}{
		{"round scam value", 500.00, 25},
		{"high value", 1500.00, 20},
		{"low value", 0.50, 15},
		{"ordinary value", 89.90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := models.ExtractedDocument{Amount: amount(tt.amount), RawText: "cobrança"}

			report := d.Detect(context.Background(), doc, "c1")

			assert.Equal(t, tt.risk, report.Signals[models.SignalSuspiciousAmount].Risk)
		})
	}
}

func TestDetect_SuspiciousPayeeTraits(t *testing.T) {
	d := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 14)

	tests := []struct {
		name  string
		payee string
		risk  int
	}{
		{"denylist plus digits capped", "Gov.br Cobrança 2026", 40},
		{"digits and short", "Ab1", 25},
		{"plain name", "Acme Services", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := models.ExtractedDocument{PayeeName: tt.payee, RawText: "cobrança"}

			report := d.Detect(context.Background(), doc, "c1")

			assert.Equal(t, tt.risk, report.Signals[models.SignalSuspiciousPayee].Risk)
		})
	}
}

func TestDetect_TextPatternSignals(t *testing.T) {
	d := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 14)

	doc := models.ExtractedDocument{
		RawText:            "URGENTE pague em bit.ly/xyz antes do bloqueio",
		SuspiciousLanguage: true,
		PossiblyTampered:   true,
	}

	report := d.Detect(context.Background(), doc, "c1")

	assert.Equal(t, 55, report.Signals[models.SignalSuspiciousText].Risk)
}

func TestDetect_TimeOfDay(t *testing.T) {
	night := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 3)
	day := newDetector(memory.NewScamStore(), memory.NewComplaintStore(), 14)

	doc := models.ExtractedDocument{RawText: "cobrança"}

	nightReport := night.Detect(context.Background(), doc, "c1")
	dayReport := day.Detect(context.Background(), doc, "c1")

	assert.Equal(t, 10, nightReport.Signals[models.SignalSuspiciousHour].Risk)
	assert.Equal(t, 0, dayReport.Signals[models.SignalSuspiciousHour].Risk)
	assert.Less(t, dayReport.RiskScore, nightReport.RiskScore)
}

func TestDetect_ComplaintLedger(t *testing.T) {
	complaints := memory.NewComplaintStore()
	complaints.AddComplaint(models.ComplaintRecord{
		PayeeName:  "Empresa Falsa",
		Complaints: 15,
		Reason:     "cobrança indevida",
	})

	d := newDetector(memory.NewScamStore(), complaints, 14)

	doc := models.ExtractedDocument{PayeeName: "Empresa Falsa LTDA", RawText: "boleto"}

	report := d.Detect(context.Background(), doc, "c1")

	// 15 complaints at 5 points each, capped at 40.
	assert.Equal(t, 40, report.Signals[models.SignalComplaintRecords].Risk)
}

func TestDetect_RiskScoreCappedAt100(t *testing.T) {
	scams := memory.NewScamStore()
	complaints := memory.NewComplaintStore()
	complaints.AddComplaint(models.ComplaintRecord{PayeeName: "Empresa Falsa", Complaints: 20})

	d := newDetector(scams, complaints, 3)
	ctx := context.Background()

	_, err := d.ReportScam(ctx, models.ScamReport{PayeeName: "Empresa Falsa LTDA"})
	require.NoError(t, err)

	doc := models.ExtractedDocument{
		PayeeName:          "Empresa Falsa LTDA",
		Amount:             amount(500.00),
		RawText:            "URGENTE bit.ly/xyz",
		SuspiciousLanguage: true,
	}

	report := d.Detect(ctx, doc, "c1")

	assert.Equal(t, 100, report.RiskScore)
}

type failingScamStore struct{}

func (failingScamStore) GetSignature(ctx context.Context, fingerprint string) (*models.ScamSignature, error) {
	return nil, errors.New("scam store unreachable")
}

func (failingScamStore) RecordSignature(ctx context.Context, fingerprint string, kind models.FingerprintKind) (models.ScamSignature, error) {
	return models.ScamSignature{}, errors.New("scam store unreachable")
}

func TestDetect_ScamStoreUnavailable(t *testing.T) {
	d := detector.NewDetector(failingScamStore{}, memory.NewComplaintStore(), detector.DefaultConfig())

	doc := models.ExtractedDocument{PayeeName: "Acme Services", RawText: "boleto"}

	report := d.Detect(context.Background(), doc, "c1")

	assert.True(t, report.Unavailable)
	assert.Empty(t, report.Signals)
	require.Len(t, report.Alerts, 1)
}

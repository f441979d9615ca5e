package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifications_total",
			Help: "Total de verificações de cobrança por status",
		},
		[]string{"status"},
	)

	VerificationConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verification_confidence",
			Help:    "Distribuição da pontuação de confiança",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	FraudRiskScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fraud_risk_scores",
			Help:    "Distribuição da pontuação de risco de fraude",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ScamReportsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scam_reports_total",
			Help: "Total de golpes reportados pelos usuários",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		VerificationsTotal,
		VerificationConfidence,
		FraudRiskScores,
		ScamReportsTotal,
	)
}

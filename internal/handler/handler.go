package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gracelabs/verification-service/internal/detector"
	"github.com/gracelabs/verification-service/internal/models"
	"github.com/gracelabs/verification-service/internal/models/dto"
	"github.com/sirupsen/logrus"
)

type VerificationServiceIn interface {
	Verify(ctx context.Context, rawText string, kind models.SourceKind, customerID string) (models.ConsolidatedVerdict, error)
	ReportScam(ctx context.Context, report models.ScamReport) error
}

type VerificationHandler struct {
	Service VerificationServiceIn
}

func NewVerificationHandler(s VerificationServiceIn) *VerificationHandler {
	return &VerificationHandler{Service: s}
}

// POST /verifications
func (h *VerificationHandler) Verify(c *gin.Context) {
	var req dto.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	verdict, err := h.Service.Verify(c.Request.Context(), req.RawText, models.SourceKind(req.SourceKind), req.CustomerID)
	if err != nil {
		logrus.Errorf("Error verifying charge: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// POST /scam-reports
func (h *VerificationHandler) ReportScam(c *gin.Context) {
	var req dto.ScamReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report := models.ScamReport{
		CustomerID: req.CustomerID,
		PayeeName:  req.PayeeName,
		Barcode:    req.Barcode,
		PixKey:     req.PixKey,
		Amount:     req.Amount,
		Kind:       req.Kind,
	}

	if err := h.Service.ReportScam(c.Request.Context(), report); err != nil {
		if errors.Is(err, detector.ErrNoFingerprints) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logrus.Errorf("Error recording scam report: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// HandleEvents consumes scam confirmations arriving over Kafka and routes
// them into the same ReportScam path the HTTP surface uses.
func (h *VerificationHandler) HandleEvents(ctx context.Context, topic string, value []byte) error {
	switch topic {
	case models.TopicScamConfirmed:
		var report models.ScamReport
		if err := json.Unmarshal(value, &report); err != nil {
			logrus.Errorf("Error unmarshalling scam confirmation: %s", err.Error())
			return err
		}

		return h.Service.ReportScam(ctx, report)
	default:
		logrus.Errorf("topic not allowed %s", topic)
		return errors.New("topic not allowed " + topic)
	}
}

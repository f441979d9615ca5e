package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gracelabs/verification-service/internal/detector"
	"github.com/gracelabs/verification-service/internal/handler"
	"github.com/gracelabs/verification-service/internal/handler/mocks"
	"github.com/gracelabs/verification-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(h *handler.VerificationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/verifications", h.Verify)
	router.POST("/scam-reports", h.ReportScam)
	return router
}

func TestVerify_Success(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)
	router := newRouter(h)

	verdict := models.ConsolidatedVerdict{
		Confidence: 95,
		Status:     models.StatusSafe,
		Summary:    "Payment looks safe (confidence 95%). The charge was verified against your billing records.",
	}

	mockService.EXPECT().
		Verify(mock.Anything, "Beneficiário: Acme Services", models.SourceDocument, "12345678901").
		Return(verdict, nil).
		Once()

	body, err := json.Marshal(map[string]string{
		"customer_id": "12345678901",
		"raw_text":    "Beneficiário: Acme Services",
		"source_kind": "DOCUMENT",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verifications", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.ConsolidatedVerdict
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusSafe, got.Status)
	assert.Equal(t, 95, got.Confidence)
}

func TestVerify_MissingCustomerID(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verifications", bytes.NewReader([]byte(`{"raw_text":"boleto"}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_ServiceError(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)
	router := newRouter(h)

	mockService.EXPECT().
		Verify(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.ConsolidatedVerdict{}, errors.New("pipeline contract violated")).
		Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verifications", bytes.NewReader([]byte(`{"customer_id":"1","raw_text":"boleto"}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportScam_Accepted(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)
	router := newRouter(h)

	mockService.EXPECT().
		ReportScam(mock.Anything, models.ScamReport{
			CustomerID: "12345678901",
			PayeeName:  "Empresa Falsa LTDA",
		}).
		Return(nil).
		Once()

	body := []byte(`{"customer_id":"12345678901","payee_name":"Empresa Falsa LTDA"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scam-reports", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestReportScam_NoFingerprintableFields(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)
	router := newRouter(h)

	mockService.EXPECT().
		ReportScam(mock.Anything, mock.Anything).
		Return(detector.ErrNoFingerprints).
		Once()

	body := []byte(`{"customer_id":"12345678901"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scam-reports", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportScam_InvalidBody(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)
	router := newRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scam-reports", bytes.NewReader([]byte(`{"customer`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ReportScam", mock.Anything, mock.Anything)
}

func TestHandleEvents_ScamConfirmed(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)

	report := models.ScamReport{
		CustomerID: "98765432100",
		PayeeName:  "Empresa Falsa LTDA",
	}

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	ctx := context.Background()
	mockService.EXPECT().
		ReportScam(ctx, report).
		Return(nil).
		Once()

	err = h.HandleEvents(ctx, models.TopicScamConfirmed, raw)

	assert.NoError(t, err)
}

func TestHandleEvents_UnmarshalError(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)

	err := h.HandleEvents(context.Background(), models.TopicScamConfirmed, []byte(`{"invalid json`))

	assert.Error(t, err)
	mockService.AssertNotCalled(t, "ReportScam", mock.Anything, mock.Anything)
}

func TestHandleEvents_TopicNotAllowed(t *testing.T) {
	mockService := mocks.NewMockVerificationServiceIn(t)
	h := handler.NewVerificationHandler(mockService)

	err := h.HandleEvents(context.Background(), "payments.created", []byte(`{}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "topic not allowed")
}

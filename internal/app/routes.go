package app

import (
	"github.com/gin-gonic/gin"
	"github.com/gracelabs/verification-service/internal/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) RegisterRoutes(h *handler.VerificationHandler) {
	a.Router.POST("/verifications", h.Verify)
	a.Router.POST("/scam-reports", h.ReportScam)

	metrics := a.Router.Group("/metrics")
	metrics.GET("", gin.WrapH(promhttp.Handler()))
}

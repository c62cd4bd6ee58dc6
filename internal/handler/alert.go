package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/repository"
)

const alertListLimit = 50

type AlertHandler interface {
	GetAlerts(c *gin.Context)
}

type alertHandler struct {
	alertRepo repository.AlertRepository
	logger    *zap.Logger
}

func NewAlertHandler(alertRepo repository.AlertRepository, logger *zap.Logger) AlertHandler {
	return &alertHandler{alertRepo: alertRepo, logger: logger}
}

// GetAlerts handles GET /api/alerts
// Query parameters:
// - severity: filter by severity (optional)
// - status: filter by status (optional)
func (h *alertHandler) GetAlerts(c *gin.Context) {
	severity := c.Query("severity")
	status := c.Query("status")

	alerts, err := h.alertRepo.GetAlerts(severity, status, alertListLimit)
	if err != nil {
		h.logger.Error("Failed to get alerts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": alerts})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/repository"
	"vigilnet/internal/service"
	"vigilnet/internal/threat"
)

const latestMessageLimit = 5

type AnalyticsHandler interface {
	GetDashboard(c *gin.Context)
	GetChannelCount(c *gin.Context)
	GetRecentMessages(c *gin.Context)
	GetHighRiskChannels(c *gin.Context)
	GetLatestMessages(c *gin.Context)
}

type analyticsHandler struct {
	dashboard   *service.DashboardService
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

func NewAnalyticsHandler(dashboard *service.DashboardService, messageRepo repository.MessageRepository, logger *zap.Logger) AnalyticsHandler {
	return &analyticsHandler{
		dashboard:   dashboard,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// GetDashboard handles GET /api/analytics/dashboard. Persistence failures are
// absorbed inside the service: this endpoint always answers 200 with a fully
// shaped payload.
func (h *analyticsHandler) GetDashboard(c *gin.Context) {
	summary := h.dashboard.Summary(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// GetChannelCount handles GET /api/analytics/channels
func (h *analyticsHandler) GetChannelCount(c *gin.Context) {
	count, err := h.messageRepo.CountDistinctChannels()
	if err != nil {
		h.logger.Error("Failed to count channels", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count channels"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// GetRecentMessages handles GET /api/analytics/recent-messages. The count of
// messages extracted within the trailing window is classified into a severity
// label.
func (h *analyticsHandler) GetRecentMessages(c *gin.Context) {
	count, err := h.messageRepo.CountMessagesSince(time.Now().Add(-service.RecentWindow))
	if err != nil {
		h.logger.Error("Failed to count recent messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to count recent messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    count,
		"severity": threat.ClassifySeverity(count),
	})
}

// GetHighRiskChannels handles GET /api/analytics/high-risk-channels
func (h *analyticsHandler) GetHighRiskChannels(c *gin.Context) {
	volumes, err := h.messageRepo.GetChannelVolumes()
	if err != nil {
		h.logger.Error("Failed to aggregate channel volumes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to aggregate channel volumes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   threat.CountHighRiskChannels(volumes),
	})
}

// GetLatestMessages handles GET /api/analytics/latest-messages
func (h *analyticsHandler) GetLatestMessages(c *gin.Context) {
	messages, err := h.messageRepo.GetLatestMessages(latestMessageLimit)
	if err != nil {
		h.logger.Error("Failed to get latest messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve latest messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages})
}

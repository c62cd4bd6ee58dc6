package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/models"
	"vigilnet/internal/repository"
)

type RiskZoneHandler interface {
	GetRiskZones(c *gin.Context)
}

type riskZoneHandler struct {
	zoneRepo repository.RiskZoneRepository
	logger   *zap.Logger
}

func NewRiskZoneHandler(zoneRepo repository.RiskZoneRepository, logger *zap.Logger) RiskZoneHandler {
	return &riskZoneHandler{zoneRepo: zoneRepo, logger: logger}
}

// GetRiskZones handles GET /api/risk-zones. The heatmap layer is derived from
// the stored zones rather than persisted separately.
func (h *riskZoneHandler) GetRiskZones(c *gin.Context) {
	zones, err := h.zoneRepo.GetAllZones()
	if err != nil {
		h.logger.Error("Failed to get risk zones", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve risk zones"})
		return
	}

	heatmap := make([]models.HeatmapPoint, 0, len(zones))
	for _, zone := range zones {
		heatmap = append(heatmap, models.HeatmapPoint{
			Region:      zone.Name,
			Intensity:   heatIntensity(zone.Alerts),
			Color:       riskColor(zone.RiskLevel),
			Coordinates: zone.Coords,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"zones":   zones,
			"heatmap": heatmap,
		},
	})
}

func heatIntensity(alerts int) int {
	if alerts > 100 {
		return 100
	}
	return alerts
}

func riskColor(riskLevel string) string {
	switch riskLevel {
	case "critical":
		return "#ef4444"
	case "high":
		return "#f97316"
	case "medium":
		return "#eab308"
	default:
		return "#22c55e"
	}
}

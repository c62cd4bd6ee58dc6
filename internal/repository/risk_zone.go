package repository

import (
	"vigilnet/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type RiskZoneRepository interface {
	GetAllZones() ([]models.RiskZone, error)
}

type riskZoneRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRiskZoneRepository(db *sqlx.DB, logger *zap.Logger) RiskZoneRepository {
	return &riskZoneRepository{db: db, logger: logger}
}

func (r *riskZoneRepository) GetAllZones() ([]models.RiskZone, error) {
	zones := []models.RiskZone{}
	query := `
		SELECT id, name, latitude, longitude, risk_level, alerts, active_users, recent_activity, description
		FROM risk_zones
		ORDER BY alerts DESC`
	err := r.db.Select(&zones, query)
	if err != nil {
		return nil, err
	}

	for i := range zones {
		zones[i].Coords = [2]float64{zones[i].Latitude, zones[i].Longitude}
	}

	return zones, nil
}

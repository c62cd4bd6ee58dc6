package repository

import (
	"vigilnet/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AlertRepository interface {
	SaveAlert(alert *models.Alert) error
	GetAlerts(severity, status string, limit int) ([]*models.Alert, error)
	GetRecentAlerts(limit int) ([]models.RecentAlert, error)
	CountBySeverity(severity string) (int, error)
	GetTopLocations(limit int) ([]models.LocationVolume, error)
}

type alertRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAlertRepository(db *sqlx.DB, logger *zap.Logger) AlertRepository {
	return &alertRepository{db: db, logger: logger}
}

// SaveAlert inserts an alert, ignoring redelivery of an already-recorded
// alert id.
func (r *alertRepository) SaveAlert(alert *models.Alert) error {
	query := `
		INSERT INTO alerts (alert_id, message_id, profile_id, platform, severity, type, message, confidence, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (alert_id) DO NOTHING`
	_, err := r.db.Exec(query,
		alert.AlertID, alert.MessageID, alert.ProfileID, alert.Platform,
		alert.Severity, alert.Type, alert.Message, alert.Confidence,
		alert.Location, alert.Status)
	return err
}

func (r *alertRepository) GetAlerts(severity, status string, limit int) ([]*models.Alert, error) {
	alerts := []*models.Alert{}
	query := `
		SELECT id, alert_id, message_id, profile_id, platform, severity, type, message, confidence, location, status, created_at
		FROM alerts
		WHERE ($1 = '' OR severity = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3`
	err := r.db.Select(&alerts, query, severity, status, limit)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) GetRecentAlerts(limit int) ([]models.RecentAlert, error) {
	alerts := []models.RecentAlert{}
	query := `
		SELECT alert_id, platform, message, confidence, location, created_at
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1`
	err := r.db.Select(&alerts, query, limit)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) CountBySeverity(severity string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM alerts WHERE severity = $1`
	err := r.db.Get(&count, query, severity)
	return count, err
}

func (r *alertRepository) GetTopLocations(limit int) ([]models.LocationVolume, error) {
	locations := []models.LocationVolume{}
	query := `
		SELECT location, COUNT(*) AS total
		FROM alerts
		WHERE location IS NOT NULL
		GROUP BY location
		ORDER BY total DESC
		LIMIT $1`
	err := r.db.Select(&locations, query, limit)
	if err != nil {
		return nil, err
	}
	return locations, nil
}

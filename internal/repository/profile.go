package repository

import (
	"database/sql"

	"vigilnet/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	SaveProfile(profile *models.Profile) error
	GetProfileByID(id int64) (*models.Profile, error)
	GetAllProfiles() ([]*models.Profile, error)
	CountProfilesAboveRisk(threshold int) (int, error)
}

type profileRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProfileRepository(db *sqlx.DB, logger *zap.Logger) ProfileRepository {
	return &profileRepository{db: db, logger: logger}
}

// SaveProfile upserts a profile keyed by its external platform id.
func (r *profileRepository) SaveProfile(profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, username, first_name, phone, platform)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			phone = EXCLUDED.phone,
			updated_at = NOW()
		RETURNING created_at, updated_at, risk_score, verification_status`
	return r.db.QueryRowx(query,
		profile.ID, profile.Username, profile.FirstName, profile.Phone, profile.Platform,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt, &profile.RiskScore, &profile.VerificationStatus)
}

func (r *profileRepository) GetProfileByID(id int64) (*models.Profile, error) {
	var profile models.Profile
	query := `
		SELECT id, username, first_name, phone, email, location, platform,
		       risk_score, verification_status, last_active, created_at, updated_at
		FROM profiles WHERE id = $1`
	err := r.db.Get(&profile, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Profile not found
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetAllProfiles() ([]*models.Profile, error) {
	profiles := []*models.Profile{}
	query := `
		SELECT id, username, first_name, phone, email, location, platform,
		       risk_score, verification_status, last_active, created_at, updated_at
		FROM profiles ORDER BY risk_score DESC`
	err := r.db.Select(&profiles, query)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) CountProfilesAboveRisk(threshold int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM profiles WHERE risk_score > $1`
	err := r.db.Get(&count, query, threshold)
	return count, err
}

package repository

import (
	"vigilnet/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CodewordRepository interface {
	GetActiveCodewords() ([]models.Codeword, error)
	IncrementDetections(slang string) error
}

type codewordRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCodewordRepository(db *sqlx.DB, logger *zap.Logger) CodewordRepository {
	return &codewordRepository{db: db, logger: logger}
}

func (r *codewordRepository) GetActiveCodewords() ([]models.Codeword, error) {
	codewords := []models.Codeword{}
	query := `
		SELECT id, slang, real_term, confidence, detections, category, is_active
		FROM codewords
		WHERE is_active
		ORDER BY detections DESC`
	err := r.db.Select(&codewords, query)
	if err != nil {
		return nil, err
	}
	return codewords, nil
}

func (r *codewordRepository) IncrementDetections(slang string) error {
	query := `UPDATE codewords SET detections = detections + 1 WHERE slang = $1`
	_, err := r.db.Exec(query, slang)
	return err
}

package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vigilnet/internal/models"
	"vigilnet/internal/repository"
	"vigilnet/internal/threat"
)

// Detector scans ingested message text against the active codeword table.
// Every matched term bumps the codeword's detection counter and raises an
// alert with a generated id. Detection runs after the ingest transaction has
// committed; its failures are logged and never surfaced to the extractor.
type Detector struct {
	codewordRepo repository.CodewordRepository
	alertRepo    repository.AlertRepository
	logger       *zap.Logger
}

func NewDetector(codewordRepo repository.CodewordRepository, alertRepo repository.AlertRepository, logger *zap.Logger) *Detector {
	return &Detector{
		codewordRepo: codewordRepo,
		alertRepo:    alertRepo,
		logger:       logger,
	}
}

// Scan matches the message text against active codewords, case-insensitively,
// and returns the number of alerts raised.
func (d *Detector) Scan(msg *models.Message) int {
	if msg.Text == "" {
		return 0
	}

	codewords, err := d.codewordRepo.GetActiveCodewords()
	if err != nil {
		d.logger.Error("Failed to load codewords for detection", zap.Error(err))
		return 0
	}

	text := strings.ToLower(msg.Text)
	raised := 0

	for _, cw := range codewords {
		if !strings.Contains(text, strings.ToLower(cw.Slang)) {
			continue
		}

		if err := d.codewordRepo.IncrementDetections(cw.Slang); err != nil {
			d.logger.Error("Failed to increment codeword detections",
				zap.String("slang", cw.Slang), zap.Error(err))
		}

		alert := &models.Alert{
			AlertID:    newAlertID(),
			MessageID:  &msg.MessageID,
			ProfileID:  &msg.SenderID,
			Platform:   "Telegram",
			Severity:   threat.ConfidenceBadge(cw.Confidence),
			Type:       "Drug Code Detection",
			Message:    fmt.Sprintf("Detected term '%s' referring to %s", cw.Slang, cw.RealTerm),
			Confidence: cw.Confidence,
			Status:     "new",
		}

		if err := d.alertRepo.SaveAlert(alert); err != nil {
			d.logger.Error("Failed to save detection alert",
				zap.String("alert_id", alert.AlertID),
				zap.Int64("message_id", msg.MessageID),
				zap.Error(err))
			continue
		}

		raised++
	}

	if raised > 0 {
		d.logger.Info("Codeword detections recorded",
			zap.Int64("message_id", msg.MessageID),
			zap.Int("alerts", raised))
	}

	return raised
}

func newAlertID() string {
	return "ALT-" + strings.ToUpper(uuid.NewString()[:8])
}

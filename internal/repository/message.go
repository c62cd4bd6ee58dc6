package repository

import (
	"fmt"
	"time"

	"vigilnet/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type MessageRepository interface {
	SaveMessageWithMetadata(msg *models.Message, meta *models.MessageMetadata) error
	GetLatestMessages(limit int) ([]models.LatestMessage, error)
	GetScanResults(limit int) ([]models.ScanResult, error)
	CountDistinctChannels() (int, error)
	CountMessagesSince(since time.Time) (int, error)
	GetChannelVolumes() ([]models.ChannelVolume, error)
}

type messageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) MessageRepository {
	return &messageRepository{db: db, logger: logger}
}

// SaveMessageWithMetadata upserts a message row and its metadata row in a
// single transaction, keyed by the external message id. Mutable fields (text,
// media flags, metadata edits) are updated on conflict; channel and sender
// identifiers stay as first written. Rolling both writes into one transaction
// keeps an orphaned message row from ever being observable.
func (r *messageRepository) SaveMessageWithMetadata(msg *models.Message, meta *models.MessageMetadata) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin ingest transaction: %w", err)
	}
	defer tx.Rollback()

	messageQuery := `
		INSERT INTO messages (
			message_id, channel_id, channel_username,
			sender_id, sender_username, sender_first_name, sender_phone,
			text, media_type, has_document, has_photo, has_video
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (message_id) DO UPDATE SET
			text = EXCLUDED.text,
			media_type = EXCLUDED.media_type,
			has_document = EXCLUDED.has_document,
			has_photo = EXCLUDED.has_photo,
			has_video = EXCLUDED.has_video
		RETURNING id, created_at`

	err = tx.QueryRowx(messageQuery,
		msg.MessageID, msg.ChannelID, msg.ChannelUsername,
		msg.SenderID, msg.SenderUsername, msg.SenderFirstName, msg.SenderPhone,
		msg.Text, msg.MediaType, msg.HasDocument, msg.HasPhoto, msg.HasVideo,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert message %d: %w", msg.MessageID, err)
	}

	metaQuery := `
		INSERT INTO message_metadata (
			message_id, message_date, edit_date, reply_to, forward_info, extracted_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (message_id) DO UPDATE SET
			edit_date = EXCLUDED.edit_date,
			reply_to = EXCLUDED.reply_to,
			forward_info = EXCLUDED.forward_info,
			extracted_at = EXCLUDED.extracted_at`

	_, err = tx.Exec(metaQuery,
		meta.MessageID, meta.MessageDate, meta.EditDate, meta.ReplyTo,
		meta.ForwardInfo, meta.ExtractedAt)
	if err != nil {
		return fmt.Errorf("upsert metadata for message %d: %w", meta.MessageID, err)
	}

	return tx.Commit()
}

func (r *messageRepository) GetLatestMessages(limit int) ([]models.LatestMessage, error) {
	messages := []models.LatestMessage{}
	query := `SELECT text, channel_username, created_at FROM messages ORDER BY created_at DESC LIMIT $1`
	err := r.db.Select(&messages, query, limit)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) GetScanResults(limit int) ([]models.ScanResult, error) {
	results := []models.ScanResult{}
	query := `
		SELECT
			m.id,
			m.message_id,
			m.channel_username,
			m.sender_username,
			m.text,
			p.risk_score,
			p.location,
			m.created_at
		FROM messages m
		LEFT JOIN profiles p ON m.sender_id = p.id
		ORDER BY m.created_at DESC
		LIMIT $1`
	err := r.db.Select(&results, query, limit)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *messageRepository) CountDistinctChannels() (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT channel_id) FROM messages`
	err := r.db.Get(&count, query)
	return count, err
}

func (r *messageRepository) CountMessagesSince(since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM message_metadata WHERE extracted_at >= $1`
	err := r.db.Get(&count, query, since)
	return count, err
}

func (r *messageRepository) GetChannelVolumes() ([]models.ChannelVolume, error) {
	volumes := []models.ChannelVolume{}
	query := `SELECT channel_id, COUNT(*) AS total FROM messages GROUP BY channel_id`
	err := r.db.Select(&volumes, query)
	if err != nil {
		return nil, err
	}
	return volumes, nil
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/models"
	"vigilnet/internal/repository"
	"vigilnet/internal/service"
)

const scanResultLimit = 50

type MessageHandler interface {
	SaveMessage(c *gin.Context)
	GetScanResults(c *gin.Context)
}

type messageHandler struct {
	messageRepo repository.MessageRepository
	detector    *service.Detector
	logger      *zap.Logger
}

func NewMessageHandler(messageRepo repository.MessageRepository, detector *service.Detector, logger *zap.Logger) MessageHandler {
	return &messageHandler{
		messageRepo: messageRepo,
		detector:    detector,
		logger:      logger,
	}
}

// SenderInfo carries the extractor's view of the message sender.
type SenderInfo struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	Phone     *string `json:"phone"`
}

// ContentPayload carries the message body and media flags.
type ContentPayload struct {
	Text        string  `json:"text" binding:"required"`
	MediaType   *string `json:"media_type"`
	HasDocument bool    `json:"has_document"`
	HasPhoto    bool    `json:"has_photo"`
	HasVideo    bool    `json:"has_video"`
}

// MetadataPayload carries extraction metadata for the message.
type MetadataPayload struct {
	Date        *time.Time      `json:"date"`
	EditDate    *time.Time      `json:"edit_date"`
	ReplyTo     *int64          `json:"reply_to"`
	ForwardInfo json.RawMessage `json:"forward_info"`
}

// SaveMessageRequest is the ingest payload delivered by the external
// extractor. Required fields are validated before any write is attempted.
type SaveMessageRequest struct {
	MessageID       int64            `json:"message_id" binding:"required"`
	ChannelID       int64            `json:"channel_id" binding:"required"`
	ChannelUsername *string          `json:"channel_username"`
	SenderID        int64            `json:"sender_id" binding:"required"`
	SenderInfo      *SenderInfo      `json:"sender_info" binding:"required"`
	Content         *ContentPayload  `json:"content" binding:"required"`
	Metadata        *MetadataPayload `json:"metadata" binding:"required"`
	ExtractedAt     *time.Time       `json:"extracted_at"`
}

// SaveMessage handles POST /api/messages. The message and its metadata are
// written as one transaction; redelivery of the same external message id
// updates the mutable fields in place. Codeword detection runs after the
// commit and cannot fail the ingest.
func (h *messageHandler) SaveMessage(c *gin.Context) {
	var req SaveMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Rejected ingest payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required message data"})
		return
	}

	extractedAt := time.Now()
	if req.ExtractedAt != nil {
		extractedAt = *req.ExtractedAt
	}

	forwardInfo := req.Metadata.ForwardInfo
	if len(forwardInfo) == 0 {
		forwardInfo = json.RawMessage("{}")
	}

	msg := &models.Message{
		MessageID:       req.MessageID,
		ChannelID:       req.ChannelID,
		ChannelUsername: req.ChannelUsername,
		SenderID:        req.SenderID,
		SenderUsername:  req.SenderInfo.Username,
		SenderFirstName: req.SenderInfo.FirstName,
		SenderPhone:     req.SenderInfo.Phone,
		Text:            req.Content.Text,
		MediaType:       req.Content.MediaType,
		HasDocument:     req.Content.HasDocument,
		HasPhoto:        req.Content.HasPhoto,
		HasVideo:        req.Content.HasVideo,
	}
	meta := &models.MessageMetadata{
		MessageID:   req.MessageID,
		MessageDate: req.Metadata.Date,
		EditDate:    req.Metadata.EditDate,
		ReplyTo:     req.Metadata.ReplyTo,
		ForwardInfo: forwardInfo,
		ExtractedAt: extractedAt,
	}

	if err := h.messageRepo.SaveMessageWithMetadata(msg, meta); err != nil {
		h.logger.Error("Failed to save message", zap.Int64("message_id", req.MessageID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save message"})
		return
	}

	h.detector.Scan(msg)

	c.JSON(http.StatusOK, gin.H{"success": true, "inserted_message_id": msg.MessageID})
}

// GetScanResults handles GET /api/scan-results
func (h *messageHandler) GetScanResults(c *gin.Context) {
	results, err := h.messageRepo.GetScanResults(scanResultLimit)
	if err != nil {
		h.logger.Error("Failed to get scan results", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve scan results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": results})
}

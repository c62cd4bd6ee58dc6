package models

import (
	"encoding/json"
	"time"
)

// Message represents a message stored in the 'messages' table. The external
// message_id is the upsert key: repeated delivery of the same message updates
// the mutable fields (text, media flags) in place.
type Message struct {
	ID              int64     `db:"id" json:"id"`
	MessageID       int64     `db:"message_id" json:"message_id"`
	ChannelID       int64     `db:"channel_id" json:"channel_id"`
	ChannelUsername *string   `db:"channel_username" json:"channel_username,omitempty"`
	SenderID        int64     `db:"sender_id" json:"sender_id"`
	SenderUsername  *string   `db:"sender_username" json:"sender_username,omitempty"`
	SenderFirstName *string   `db:"sender_first_name" json:"sender_first_name,omitempty"`
	SenderPhone     *string   `db:"sender_phone" json:"sender_phone,omitempty"`
	Text            string    `db:"text" json:"text"`
	MediaType       *string   `db:"media_type" json:"media_type,omitempty"`
	HasDocument     bool      `db:"has_document" json:"has_document"`
	HasPhoto        bool      `db:"has_photo" json:"has_photo"`
	HasVideo        bool      `db:"has_video" json:"has_video"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// MessageMetadata represents a row in 'message_metadata', one-to-one with a
// message via the external message_id.
type MessageMetadata struct {
	MessageID   int64           `db:"message_id" json:"message_id"`
	MessageDate *time.Time      `db:"message_date" json:"message_date,omitempty"`
	EditDate    *time.Time      `db:"edit_date" json:"edit_date,omitempty"`
	ReplyTo     *int64          `db:"reply_to" json:"reply_to,omitempty"`
	ForwardInfo json.RawMessage `db:"forward_info" json:"forward_info,omitempty"`
	ExtractedAt time.Time       `db:"extracted_at" json:"extracted_at"`
}

// LatestMessage is the reduced shape returned by the latest-messages endpoint.
type LatestMessage struct {
	Text            string    `db:"text" json:"text"`
	ChannelUsername *string   `db:"channel_username" json:"channel_username"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ScanResult is a message joined with its sender profile for the scan-results
// view.
type ScanResult struct {
	ID              int64     `db:"id" json:"id"`
	MessageID       int64     `db:"message_id" json:"message_id"`
	ChannelUsername *string   `db:"channel_username" json:"channel"`
	SenderUsername  *string   `db:"sender_username" json:"user"`
	Text            string    `db:"text" json:"message"`
	RiskScore       *int      `db:"risk_score" json:"risk_score"`
	Location        *string   `db:"location" json:"location"`
	CreatedAt       time.Time `db:"created_at" json:"timestamp"`
}

// ChannelVolume is the per-channel message count produced by the GROUP BY
// aggregation over all messages.
type ChannelVolume struct {
	ChannelID int64 `db:"channel_id" json:"channel_id"`
	Count     int   `db:"total" json:"total"`
}

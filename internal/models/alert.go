package models

import "time"

// Alert represents a row in the 'alerts' table. AlertID is the external
// "ALT-..." identifier, unique for upsert idempotency.
type Alert struct {
	ID         int64     `db:"id" json:"-"`
	AlertID    string    `db:"alert_id" json:"id"`
	MessageID  *int64    `db:"message_id" json:"message_id,omitempty"`
	ProfileID  *int64    `db:"profile_id" json:"profile_id,omitempty"`
	Platform   string    `db:"platform" json:"platform"`
	Severity   string    `db:"severity" json:"severity"`
	Type       string    `db:"type" json:"type"`
	Message    string    `db:"message" json:"message"`
	Confidence int       `db:"confidence" json:"confidence"`
	Location   *string   `db:"location" json:"location,omitempty"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"timestamp"`
}

// RecentAlert is the reduced alert shape embedded in the dashboard summary.
type RecentAlert struct {
	AlertID    string    `db:"alert_id" json:"id"`
	Platform   string    `db:"platform" json:"platform"`
	Message    string    `db:"message" json:"message"`
	Confidence int       `db:"confidence" json:"confidence"`
	Location   *string   `db:"location" json:"location"`
	CreatedAt  time.Time `db:"created_at" json:"timestamp"`
}

// LocationVolume is the per-location alert count from the GROUP BY
// aggregation over alerts.
type LocationVolume struct {
	Location string `db:"location" json:"city"`
	Count    int    `db:"total" json:"alerts"`
}

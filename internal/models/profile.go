package models

import "time"

// Profile represents a platform identity stored in the 'profiles' table. The
// id is the external platform identifier, also the upsert key. Profiles are
// written by the extractor; the analytics side only reads them.
type Profile struct {
	ID                 int64      `db:"id" json:"id"`
	Username           string     `db:"username" json:"username"`
	FirstName          *string    `db:"first_name" json:"first_name,omitempty"`
	Phone              *string    `db:"phone" json:"phone,omitempty"`
	Email              *string    `db:"email" json:"email,omitempty"`
	Location           *string    `db:"location" json:"location,omitempty"`
	Platform           string     `db:"platform" json:"platform"`
	RiskScore          int        `db:"risk_score" json:"risk_score"`
	VerificationStatus string     `db:"verification_status" json:"verification_status"`
	LastActive         *time.Time `db:"last_active" json:"last_active,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

package models

// Codeword maps a slang term to a real-world substance name. Rows are
// slowly-changing reference data; the detector only bumps the detections
// counter.
type Codeword struct {
	ID         int64   `db:"id" json:"-"`
	Slang      string  `db:"slang" json:"slang"`
	RealTerm   string  `db:"real_term" json:"realTerm"`
	Confidence int     `db:"confidence" json:"confidence"`
	Detections int     `db:"detections" json:"detections"`
	Category   *string `db:"category" json:"category"`
	IsActive   bool    `db:"is_active" json:"-"`
}

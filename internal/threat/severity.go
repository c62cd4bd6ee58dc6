// Package threat implements the pure classification core of the monitoring
// backend: severity labels derived from message volumes, high-risk channel
// detection, location risk tiers and confidence badges. Everything here is a
// deterministic function over integers, safe for concurrent use.
package threat

import "vigilnet/internal/models"

// Severity is the ordered threat level derived from the trailing-window
// message count.
type Severity string

const (
	SeverityNormal   Severity = "NORMAL"
	SeverityElevated Severity = "ELEVATED"
	SeverityExtreme  Severity = "EXTREME"
)

// Threshold table. Kept as named constants so the classification policy is
// auditable in one place.
const (
	// ElevatedMin is the lowest trailing-window count classified ELEVATED.
	ElevatedMin = 50
	// ExtremeMin is the lowest trailing-window count classified EXTREME.
	// A count of exactly 80 is still ELEVATED.
	ExtremeMin = 81

	// HighRiskChannelMin is the per-channel message count at which a channel
	// qualifies as high risk.
	HighRiskChannelMin = 20

	// FlaggedRiskScore is the profile risk score above which a profile counts
	// as flagged on the dashboard.
	FlaggedRiskScore = 50

	// Location tier boundaries over per-location alert counts.
	LocationCriticalMin = 51
	LocationHighMin     = 26
)

// ClassifySeverity maps a trailing-window message count to a severity label:
//
//	count < 50   → NORMAL
//	50 ≤ count ≤ 80 → ELEVATED
//	count > 80   → EXTREME
//
// Negative counts are a precondition violation; the persistence layer is
// trusted to return non-negative aggregates.
func ClassifySeverity(recentCount int) Severity {
	switch {
	case recentCount >= ExtremeMin:
		return SeverityExtreme
	case recentCount >= ElevatedMin:
		return SeverityElevated
	default:
		return SeverityNormal
	}
}

// CountHighRiskChannels returns how many channels have a message count of at
// least HighRiskChannelMin. An empty aggregate yields 0.
func CountHighRiskChannels(volumes []models.ChannelVolume) int {
	n := 0
	for _, v := range volumes {
		if v.Count >= HighRiskChannelMin {
			n++
		}
	}
	return n
}

// LocationTier maps a per-location alert count to a risk tier for the
// dashboard's top-locations list.
func LocationTier(alertCount int) string {
	switch {
	case alertCount >= LocationCriticalMin:
		return "Critical"
	case alertCount >= LocationHighMin:
		return "High"
	default:
		return "Medium"
	}
}

// ConfidenceBadge maps a detection confidence (0–100) to the alert severity
// recorded for it.
func ConfidenceBadge(confidence int) string {
	switch {
	case confidence >= 90:
		return "critical"
	case confidence >= 70:
		return "high"
	default:
		return "medium"
	}
}

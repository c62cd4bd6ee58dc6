package models

// RiskZone represents a geographic monitoring zone in the 'risk_zones' table.
type RiskZone struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Latitude       float64 `db:"latitude" json:"-"`
	Longitude      float64 `db:"longitude" json:"-"`
	RiskLevel      string  `db:"risk_level" json:"riskLevel"`
	Alerts         int     `db:"alerts" json:"alerts"`
	ActiveUsers    int     `db:"active_users" json:"activeUsers"`
	RecentActivity *string `db:"recent_activity" json:"recentActivity"`
	Description    *string `db:"description" json:"description"`

	// Coords is filled from Latitude/Longitude for the frontend map.
	Coords [2]float64 `db:"-" json:"coords"`
}

// HeatmapPoint is the derived heatmap entry served alongside zones.
type HeatmapPoint struct {
	Region      string     `json:"region"`
	Intensity   int        `json:"intensity"`
	Color       string     `json:"color"`
	Coordinates [2]float64 `json:"coordinates"`
}

package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vigilnet/internal/models"
	"vigilnet/internal/repository"
	"vigilnet/internal/threat"
)

const (
	// RecentWindow is the trailing window over which message volume is
	// classified into a severity label.
	RecentWindow = 6 * time.Hour

	recentAlertLimit = 5
	topLocationLimit = 5
)

// Stat is one labeled statistic entry on the dashboard.
type Stat struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Trend string `json:"trend"`
	Color string `json:"color"`
}

// Location is a top-locations entry with its derived risk tier.
type Location struct {
	City   string `json:"city"`
	Alerts int    `json:"alerts"`
	Risk   string `json:"risk"`
}

// Performance is the static system-performance block the frontend charts.
type Performance struct {
	ScanAccuracy   float64 `json:"scan_accuracy"`
	APIResponse    float64 `json:"api_response"`
	DataProcessing float64 `json:"data_processing"`
}

// Summary is the full dashboard payload. Its shape is fixed: every field is
// always populated, possibly with fallback values.
type Summary struct {
	Stats             []Stat               `json:"stats"`
	HighRiskLocations []Location           `json:"high_risk_locations"`
	RecentAlerts      []models.RecentAlert `json:"recent_alerts"`
	SystemPerformance Performance          `json:"system_performance"`
}

// DashboardService assembles the dashboard summary from independent aggregate
// queries.
type DashboardService struct {
	profileRepo repository.ProfileRepository
	alertRepo   repository.AlertRepository
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

func NewDashboardService(
	profileRepo repository.ProfileRepository,
	alertRepo repository.AlertRepository,
	messageRepo repository.MessageRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		profileRepo: profileRepo,
		alertRepo:   alertRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Summary runs the five dashboard queries concurrently and assembles the
// payload. If any query fails the whole summary is replaced by the fallback:
// partial results are never mixed in, so the caller always sees a consistent,
// fully-shaped object. No retries; the UI re-requests on its refresh cycle.
func (s *DashboardService) Summary(ctx context.Context) *Summary {
	var (
		flaggedProfiles int
		highAlerts      int
		recentAlerts    []models.RecentAlert
		topLocations    []models.LocationVolume
		recentMessages  int
	)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		flaggedProfiles, err = s.profileRepo.CountProfilesAboveRisk(threat.FlaggedRiskScore)
		return err
	})
	g.Go(func() error {
		var err error
		highAlerts, err = s.alertRepo.CountBySeverity("high")
		return err
	})
	g.Go(func() error {
		var err error
		recentAlerts, err = s.alertRepo.GetRecentAlerts(recentAlertLimit)
		return err
	})
	g.Go(func() error {
		var err error
		topLocations, err = s.alertRepo.GetTopLocations(topLocationLimit)
		return err
	})
	g.Go(func() error {
		var err error
		recentMessages, err = s.messageRepo.CountMessagesSince(time.Now().Add(-RecentWindow))
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Warn("Dashboard query failed, serving fallback summary", zap.Error(err))
		return FallbackSummary()
	}

	locations := make([]Location, 0, len(topLocations))
	for _, loc := range topLocations {
		locations = append(locations, Location{
			City:   loc.Location,
			Alerts: loc.Count,
			Risk:   threat.LocationTier(loc.Count),
		})
	}

	if recentAlerts == nil {
		recentAlerts = []models.RecentAlert{}
	}

	return &Summary{
		Stats: buildStats(flaggedProfiles, recentMessages, highAlerts,
			threat.ClassifySeverity(recentMessages)),
		HighRiskLocations: locations,
		RecentAlerts:      recentAlerts,
		SystemPerformance: systemPerformance(),
	}
}

// FallbackSummary is the zeroed, fully-shaped payload served when the
// persistence layer is unavailable.
func FallbackSummary() *Summary {
	return &Summary{
		Stats:             buildStats(0, 0, 0, threat.SeverityNormal),
		HighRiskLocations: []Location{},
		RecentAlerts:      []models.RecentAlert{},
		SystemPerformance: systemPerformance(),
	}
}

func buildStats(flaggedProfiles, recentMessages, highAlerts int, severity threat.Severity) []Stat {
	return []Stat{
		{Title: "Flagged Users", Value: strconv.Itoa(flaggedProfiles), Icon: "Users", Trend: "up", Color: "text-warning"},
		{Title: "Recent Messages", Value: strconv.Itoa(recentMessages), Icon: "Activity", Trend: "stable", Color: "text-success"},
		{Title: "High-Risk Alerts", Value: strconv.Itoa(highAlerts), Icon: "AlertTriangle", Trend: "up", Color: "text-destructive"},
		{Title: "Threat Level", Value: string(severity), Icon: "Shield", Trend: "stable", Color: "text-warning"},
	}
}

func systemPerformance() Performance {
	return Performance{ScanAccuracy: 94.2, APIResponse: 98.7, DataProcessing: 89.3}
}

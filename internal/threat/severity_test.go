package threat

import (
	"testing"

	"vigilnet/internal/models"
)

func TestClassifySeverityBoundaries(t *testing.T) {
	cases := []struct {
		count int
		want  Severity
	}{
		{0, SeverityNormal},
		{1, SeverityNormal},
		{49, SeverityNormal},
		{50, SeverityElevated},
		{65, SeverityElevated},
		{80, SeverityElevated},
		{81, SeverityExtreme},
		{500, SeverityExtreme},
	}

	for _, tc := range cases {
		if got := ClassifySeverity(tc.count); got != tc.want {
			t.Errorf("ClassifySeverity(%d) = %s, want %s", tc.count, got, tc.want)
		}
	}
}

func TestCountHighRiskChannelsEmpty(t *testing.T) {
	if got := CountHighRiskChannels(nil); got != 0 {
		t.Errorf("expected 0 high-risk channels for empty aggregate, got %d", got)
	}
	if got := CountHighRiskChannels([]models.ChannelVolume{}); got != 0 {
		t.Errorf("expected 0 high-risk channels for empty slice, got %d", got)
	}
}

func TestCountHighRiskChannels(t *testing.T) {
	cases := []struct {
		name    string
		volumes []models.ChannelVolume
		want    int
	}{
		{
			name: "mixed counts around the threshold",
			volumes: []models.ChannelVolume{
				{ChannelID: 1, Count: 19},
				{ChannelID: 2, Count: 20},
				{ChannelID: 3, Count: 25},
			},
			want: 2,
		},
		{
			name:    "single channel below threshold",
			volumes: []models.ChannelVolume{{ChannelID: 7, Count: 5}},
			want:    0,
		},
		{
			name:    "single channel at threshold",
			volumes: []models.ChannelVolume{{ChannelID: 7, Count: 20}},
			want:    1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountHighRiskChannels(tc.volumes); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLocationTier(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{100, "Critical"},
		{51, "Critical"},
		{50, "High"},
		{26, "High"},
		{25, "Medium"},
		{0, "Medium"},
	}

	for _, tc := range cases {
		if got := LocationTier(tc.count); got != tc.want {
			t.Errorf("LocationTier(%d) = %s, want %s", tc.count, got, tc.want)
		}
	}
}

func TestConfidenceBadge(t *testing.T) {
	cases := []struct {
		confidence int
		want       string
	}{
		{96, "critical"},
		{90, "critical"},
		{89, "high"},
		{70, "high"},
		{69, "medium"},
		{0, "medium"},
	}

	for _, tc := range cases {
		if got := ConfidenceBadge(tc.confidence); got != tc.want {
			t.Errorf("ConfidenceBadge(%d) = %s, want %s", tc.confidence, got, tc.want)
		}
	}
}

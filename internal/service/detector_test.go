package service

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"vigilnet/internal/models"
)

type fakeCodewordRepo struct {
	codewords []models.Codeword
	bumped    []string
	err       error
}

func (f *fakeCodewordRepo) GetActiveCodewords() ([]models.Codeword, error) {
	return f.codewords, f.err
}
func (f *fakeCodewordRepo) IncrementDetections(slang string) error {
	f.bumped = append(f.bumped, slang)
	return nil
}

func activeCodewords() []models.Codeword {
	return []models.Codeword{
		{Slang: "candy", RealTerm: "MDMA/Ecstasy", Confidence: 91},
		{Slang: "snow", RealTerm: "Cocaine", Confidence: 75},
		{Slang: "ice", RealTerm: "Methamphetamine", Confidence: 60},
	}
}

func TestScanMatchesCaseInsensitively(t *testing.T) {
	codewords := &fakeCodewordRepo{codewords: activeCodewords()}
	alerts := &fakeAlertRepo{}
	detector := NewDetector(codewords, alerts, zap.NewNop())

	msg := &models.Message{MessageID: 101, SenderID: 7, Text: "Premium CANDY and Snow available"}
	raised := detector.Scan(msg)

	if raised != 2 {
		t.Fatalf("expected 2 alerts, got %d", raised)
	}
	if len(codewords.bumped) != 2 {
		t.Fatalf("expected 2 detection bumps, got %d", len(codewords.bumped))
	}

	first := alerts.saved[0]
	if first.Severity != "critical" {
		t.Errorf("confidence 91 should map to critical severity, got %s", first.Severity)
	}
	if !strings.Contains(first.Message, "candy") || !strings.Contains(first.Message, "MDMA") {
		t.Errorf("alert message should name term and substance, got %q", first.Message)
	}
	if !strings.HasPrefix(first.AlertID, "ALT-") {
		t.Errorf("alert id should carry the ALT- prefix, got %s", first.AlertID)
	}
	if first.MessageID == nil || *first.MessageID != 101 {
		t.Errorf("alert should reference the source message")
	}

	if second := alerts.saved[1]; second.Severity != "high" {
		t.Errorf("confidence 75 should map to high severity, got %s", second.Severity)
	}
}

func TestScanNoMatches(t *testing.T) {
	codewords := &fakeCodewordRepo{codewords: activeCodewords()}
	alerts := &fakeAlertRepo{}
	detector := NewDetector(codewords, alerts, zap.NewNop())

	if raised := detector.Scan(&models.Message{MessageID: 1, Text: "see you at the meeting"}); raised != 0 {
		t.Errorf("expected no alerts, got %d", raised)
	}
	if raised := detector.Scan(&models.Message{MessageID: 2, Text: ""}); raised != 0 {
		t.Errorf("expected no alerts for empty text, got %d", raised)
	}
	if len(alerts.saved) != 0 {
		t.Errorf("no alerts should be saved, got %d", len(alerts.saved))
	}
}

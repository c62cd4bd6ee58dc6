package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/models"
	"vigilnet/internal/service"
)

type fakeMessageRepo struct {
	savedMessages []*models.Message
	savedMeta     []*models.MessageMetadata
	recentCount   int
	volumes       []models.ChannelVolume
	err           error
}

func (f *fakeMessageRepo) SaveMessageWithMetadata(msg *models.Message, meta *models.MessageMetadata) error {
	if f.err != nil {
		return f.err
	}
	f.savedMessages = append(f.savedMessages, msg)
	f.savedMeta = append(f.savedMeta, meta)
	return nil
}
func (f *fakeMessageRepo) GetLatestMessages(int) ([]models.LatestMessage, error) {
	return []models.LatestMessage{}, f.err
}
func (f *fakeMessageRepo) GetScanResults(int) ([]models.ScanResult, error) {
	return []models.ScanResult{}, f.err
}
func (f *fakeMessageRepo) CountDistinctChannels() (int, error) { return 0, f.err }
func (f *fakeMessageRepo) CountMessagesSince(time.Time) (int, error) {
	return f.recentCount, f.err
}
func (f *fakeMessageRepo) GetChannelVolumes() ([]models.ChannelVolume, error) {
	return f.volumes, f.err
}

type fakeProfileRepo struct {
	profiles map[int64]*models.Profile
	err      error
}

func (f *fakeProfileRepo) SaveProfile(p *models.Profile) error { return f.err }
func (f *fakeProfileRepo) GetProfileByID(id int64) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[id], nil
}
func (f *fakeProfileRepo) GetAllProfiles() ([]*models.Profile, error) { return nil, f.err }
func (f *fakeProfileRepo) CountProfilesAboveRisk(int) (int, error)    { return 0, f.err }

type fakeAlertRepo struct {
	saved []*models.Alert
	err   error
}

func (f *fakeAlertRepo) SaveAlert(a *models.Alert) error {
	f.saved = append(f.saved, a)
	return f.err
}
func (f *fakeAlertRepo) GetAlerts(string, string, int) ([]*models.Alert, error) {
	return []*models.Alert{}, f.err
}
func (f *fakeAlertRepo) GetRecentAlerts(int) ([]models.RecentAlert, error) {
	return []models.RecentAlert{}, f.err
}
func (f *fakeAlertRepo) CountBySeverity(string) (int, error) { return 0, f.err }
func (f *fakeAlertRepo) GetTopLocations(int) ([]models.LocationVolume, error) {
	return []models.LocationVolume{}, f.err
}

type fakeCodewordRepo struct {
	codewords []models.Codeword
	err       error
}

func (f *fakeCodewordRepo) GetActiveCodewords() ([]models.Codeword, error) {
	return f.codewords, f.err
}
func (f *fakeCodewordRepo) IncrementDetections(string) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetDashboardServesFallbackOnPersistenceFailure(t *testing.T) {
	failing := errors.New("connection refused")
	dashboard := service.NewDashboardService(
		&fakeProfileRepo{err: failing},
		&fakeAlertRepo{err: failing},
		&fakeMessageRepo{err: failing},
		zap.NewNop(),
	)
	h := NewAnalyticsHandler(dashboard, &fakeMessageRepo{err: failing}, zap.NewNop())

	router := newTestRouter()
	router.GET("/api/analytics/dashboard", h.GetDashboard)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard must never fail, got status %d", rec.Code)
	}

	var payload struct {
		Success bool            `json:"success"`
		Data    service.Summary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success {
		t.Error("expected success flag on fallback payload")
	}
	if len(payload.Data.Stats) != 4 {
		t.Errorf("fallback payload must carry all 4 stats, got %d", len(payload.Data.Stats))
	}
	if payload.Data.RecentAlerts == nil {
		t.Error("recent_alerts must be an empty list, not null")
	}
}

func TestGetRecentMessagesSeverity(t *testing.T) {
	h := NewAnalyticsHandler(nil, &fakeMessageRepo{recentCount: 64}, zap.NewNop())

	router := newTestRouter()
	router.GET("/api/analytics/recent-messages", h.GetRecentMessages)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/recent-messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload struct {
		Count    int    `json:"count"`
		Severity string `json:"severity"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 64 || payload.Severity != "ELEVATED" {
		t.Errorf("got count=%d severity=%s, want 64/ELEVATED", payload.Count, payload.Severity)
	}
}

func TestGetHighRiskChannels(t *testing.T) {
	repo := &fakeMessageRepo{volumes: []models.ChannelVolume{
		{ChannelID: 1, Count: 19},
		{ChannelID: 2, Count: 20},
		{ChannelID: 3, Count: 25},
	}}
	h := NewAnalyticsHandler(nil, repo, zap.NewNop())

	router := newTestRouter()
	router.GET("/api/analytics/high-risk-channels", h.GetHighRiskChannels)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/high-risk-channels", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 2 {
		t.Errorf("expected 2 high-risk channels, got %d", payload.Count)
	}
}

func ingestBody(t *testing.T, mutate func(map[string]any)) *bytes.Buffer {
	t.Helper()
	body := map[string]any{
		"message_id":       4211,
		"channel_id":       88,
		"channel_username": "narcowatch",
		"sender_id":        7,
		"sender_info":      map[string]any{"username": "dealer", "first_name": "D"},
		"content":          map[string]any{"text": "got that candy", "has_photo": true},
		"metadata":         map[string]any{"date": "2024-01-15T14:23:45Z"},
	}
	if mutate != nil {
		mutate(body)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(raw)
}

func newMessageHandler(msgRepo *fakeMessageRepo, alertRepo *fakeAlertRepo) MessageHandler {
	detector := service.NewDetector(
		&fakeCodewordRepo{codewords: []models.Codeword{{Slang: "candy", RealTerm: "MDMA/Ecstasy", Confidence: 91}}},
		alertRepo,
		zap.NewNop(),
	)
	return NewMessageHandler(msgRepo, detector, zap.NewNop())
}

func TestSaveMessageRejectsMissingContent(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	h := newMessageHandler(msgRepo, &fakeAlertRepo{})

	router := newTestRouter()
	router.POST("/api/messages", h.SaveMessage)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", ingestBody(t, func(b map[string]any) {
		delete(b, "content")
	}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if len(msgRepo.savedMessages) != 0 || len(msgRepo.savedMeta) != 0 {
		t.Error("validation failure must not write any rows")
	}
}

func TestSaveMessageIngestsAndDetects(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	alertRepo := &fakeAlertRepo{}
	h := newMessageHandler(msgRepo, alertRepo)

	router := newTestRouter()
	router.POST("/api/messages", h.SaveMessage)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", ingestBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Success           bool  `json:"success"`
		InsertedMessageID int64 `json:"inserted_message_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.Success || payload.InsertedMessageID != 4211 {
		t.Errorf("unexpected response: %+v", payload)
	}

	if len(msgRepo.savedMessages) != 1 {
		t.Fatalf("expected 1 saved message, got %d", len(msgRepo.savedMessages))
	}
	if meta := msgRepo.savedMeta[0]; string(meta.ForwardInfo) != "{}" {
		t.Errorf("missing forward_info should default to {}, got %s", meta.ForwardInfo)
	}
	if len(alertRepo.saved) != 1 {
		t.Errorf("expected 1 detection alert for 'candy', got %d", len(alertRepo.saved))
	}
}

func TestGetProfileByIDNotFound(t *testing.T) {
	h := NewProfileHandler(&fakeProfileRepo{profiles: map[int64]*models.Profile{}}, zap.NewNop())

	router := newTestRouter()
	router.GET("/api/profiles/:id", h.GetProfileByID)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetProfileByIDInvalidID(t *testing.T) {
	h := NewProfileHandler(&fakeProfileRepo{}, zap.NewNop())

	router := newTestRouter()
	router.GET("/api/profiles/:id", h.GetProfileByID)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"solarpulse/backend/services/energy-service/internal/auth"
	httpserver "solarpulse/backend/services/energy-service/internal/http"
	"solarpulse/backend/services/energy-service/internal/models"
	"solarpulse/backend/services/energy-service/internal/repository"
	"solarpulse/backend/services/energy-service/internal/service"
)

const testSecret = "handler-test-secret"

// emptyStore is a telemetry store with no data; every read path falls
// back to fabricated samples.
type emptyStore struct {
	inserted []models.TelemetrySample
}

func (s *emptyStore) Insert(_ context.Context, sample *models.TelemetrySample) error {
	sample.ID = int64(len(s.inserted) + 1)
	s.inserted = append(s.inserted, *sample)
	return nil
}

func (s *emptyStore) Latest(context.Context, string) (*models.TelemetrySample, error) {
	return nil, nil
}

func (s *emptyStore) History(context.Context, string, time.Time, int) ([]models.TelemetrySample, error) {
	return nil, nil
}

func (s *emptyStore) SumWindow(context.Context, string, time.Time) (repository.WindowSums, error) {
	return repository.WindowSums{}, nil
}

func (s *emptyStore) FleetSums(context.Context, time.Time) (repository.WindowSums, error) {
	return repository.WindowSums{}, nil
}

type noAccounts struct{}

func (noAccounts) CountClients(context.Context) (int64, int64, error) { return 0, 0, nil }

func newTestRouter(store service.TelemetryStore) http.Handler {
	svc := service.NewEnergyService(store, noAccounts{}, service.NewFallbackGenerator(rand.NewSource(1), nil), false, zap.NewNop())
	routes := httpserver.Routes{
		Realtime:   NewRealtimeHandler(svc),
		History:    NewHistoryHandler(svc),
		Summary:    NewSummaryHandler(svc),
		Ingest:     NewIngestHandler(svc),
		FleetStats: NewFleetStatsHandler(svc),
		Health:     NewHealthHandler(),
	}
	return httpserver.NewRouter(routes, auth.Middleware(testSecret))
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	now := time.Now()
	claims := auth.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHistoryForbiddenForOtherClient(t *testing.T) {
	router := newTestRouter(&emptyStore{})
	token := signToken(t, "client-a", auth.RoleClient)

	rec := doRequest(t, router, http.MethodGet, "/api/energy/history/client-b", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestHistoryAdminGetsFabricatedData(t *testing.T) {
	router := newTestRouter(&emptyStore{})
	token := signToken(t, "admin-1", auth.RoleAdmin)

	rec := doRequest(t, router, http.MethodGet, "/api/energy/history/client-b?period=week", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var samples []models.TelemetrySample
	if err := json.Unmarshal(rec.Body.Bytes(), &samples); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(samples) != 7 {
		t.Fatalf("len = %d, want 7 fabricated points", len(samples))
	}
	for _, s := range samples {
		if s.SubjectID != "client-b" {
			t.Fatalf("subject = %q, want client-b", s.SubjectID)
		}
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	router := newTestRouter(&emptyStore{})
	rec := doRequest(t, router, http.MethodGet, "/api/energy/summary", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSummaryReturnsPlaceholdersForEmptyStore(t *testing.T) {
	router := newTestRouter(&emptyStore{})
	token := signToken(t, "client-a", auth.RoleClient)

	rec := doRequest(t, router, http.MethodGet, "/api/energy/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report models.SummaryReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Today.Production != 45.5 || report.Today.Consumption != 32.1 {
		t.Fatalf("today = %+v", report.Today)
	}
	if report.Month.Production != 1234.5 || report.Month.Consumption != 890.2 {
		t.Fatalf("month = %+v", report.Month)
	}
	if report.Year.Production != 14567.8 || report.Year.Consumption != 10234.5 {
		t.Fatalf("year = %+v", report.Year)
	}
}

func TestIngestSelfAndForbidden(t *testing.T) {
	store := &emptyStore{}
	router := newTestRouter(store)
	clientToken := signToken(t, "client-a", auth.RoleClient)

	payload := []byte(`{"production": 4.2, "consumption": 1.5}`)
	rec := doRequest(t, router, http.MethodPost, "/api/energy/data", clientToken, payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if len(store.inserted) != 1 || store.inserted[0].SubjectID != "client-a" {
		t.Fatalf("inserted = %+v, want one sample for client-a", store.inserted)
	}

	other := []byte(`{"client_id": "client-b", "production": 4.2, "consumption": 1.5}`)
	rec = doRequest(t, router, http.MethodPost, "/api/energy/data", clientToken, other)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("denied sample was persisted")
	}
}

func TestIngestValidationError(t *testing.T) {
	router := newTestRouter(&emptyStore{})
	token := signToken(t, "client-a", auth.RoleClient)

	rec := doRequest(t, router, http.MethodPost, "/api/energy/data", token, []byte(`{"production": 4.2}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestFleetStatsAdminOnly(t *testing.T) {
	router := newTestRouter(&emptyStore{})

	rec := doRequest(t, router, http.MethodGet, "/api/energy/admin/stats", signToken(t, "client-a", auth.RoleClient), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client status = %d, want 403", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/energy/admin/stats", signToken(t, "admin-1", auth.RoleAdmin), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}

	var stats models.FleetStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats != (models.FleetStats{}) {
		t.Fatalf("stats = %+v, want zeros without substitution", stats)
	}
}

func TestHealthIsOpen(t *testing.T) {
	router := newTestRouter(&emptyStore{})
	rec := doRequest(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

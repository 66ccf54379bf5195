package httpapi

import (
	"Bodi/internal/adapters/eventbus"
	"Bodi/internal/adapters/memory"
	"Bodi/internal/adapters/metrics"
	"Bodi/internal/adapters/security"
	"Bodi/internal/adapters/sqlite"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"Bodi/internal/geo"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "6368616e676520746869732070617373776f726420746f206120736563726574"

type stubCompletion struct {
	reply string
	err   error
}

func (s stubCompletion) Complete(context.Context, ports.CompletionRequest) (string, error) {
	return s.reply, s.err
}

type stubSearch struct {
	results []domain.WebResult
}

func (s stubSearch) Search(context.Context, ports.WebSearchRequest) ([]domain.WebResult, error) {
	return s.results, nil
}

type testEnv struct {
	handler http.Handler
	bus     ports.EventBus
	metrics *metrics.Metrics
}

type envOptions struct {
	completion ports.CompletionPort
	search     ports.WebSearchPort
	ledger     bool
	health     HealthService
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	nopLogger := zerolog.Nop()

	store := memory.NewStore(&nopLogger)
	store.Seed(memory.DefaultSeed([]domain.Property{
		{ID: "LAG-001", Title: "Modern 2-Bedroom Apartment", Location: "Yaba, Lagos", PriceNGN: 800000, Type: domain.PropertyApartment, Verified: true, SafetyScore: 8.5, OwnerID: "USR-001", ImageURLs: []string{}, Amenities: []string{}},
		{ID: "LAG-002", Title: "Luxury 4-Bedroom Duplex", Location: "Lekki Phase 1, Lagos", PriceNGN: 4500000, Type: domain.PropertyDuplex, Verified: true, SafetyScore: 9.2, OwnerID: "USR-002", ImageURLs: []string{}, Amenities: []string{}},
		{ID: "LAG-003", Title: "Cozy Studio", Location: "Akoka, Lagos", PriceNGN: 450000, Type: domain.PropertyStudio, Verified: false, SafetyScore: 7.1, OwnerID: "USR-001", ImageURLs: []string{}, Amenities: []string{}},
		{ID: "ABJ-001", Title: "Executive Flat", Location: "Wuse 2, Abuja", PriceNGN: 1800000, Type: domain.PropertyFlat, Verified: true, SafetyScore: 8.8, OwnerID: "USR-002", ImageURLs: []string{}, Amenities: []string{}},
	}, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)))

	bus := eventbus.NewInMemoryEventBus(&nopLogger)
	ids := services.NewIDGenerator(7)
	kb := geo.MustLoad()

	svc := Services{
		Properties: services.NewPropertyService(store, bus, &nopLogger),
		Users:      services.NewUserService(store, bus, &nopLogger),
		Escrow:     services.NewEscrowService(store, bus, ids, &nopLogger),
		Reviews:    services.NewReviewService(store, bus, ids, &nopLogger),
		Safety:     services.NewSafetyService(store, bus, ids, &nopLogger),
		Community:  services.NewCommunityService(store, bus, ids, &nopLogger),
		Landlord:   services.NewLandlordService(store, nil, &nopLogger),
		Assistant:  services.NewAssistantService(store, opts.completion, opts.search, kb, &nopLogger),
		Places:     kb,
	}

	if opts.ledger {
		ledger, err := sqlite.Open(context.Background(), ":memory:", &nopLogger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = ledger.Close() })
		sec, err := security.NewAESServiceFromHex(testKeyHex, &nopLogger)
		require.NoError(t, err)
		svc.Audit = services.NewAuditRecorder(ledger, sec, &nopLogger)
		svc.Audit.Register(bus)
	}

	m := metrics.New()
	m.Subscribe(bus)

	handler := NewRouter(&nopLogger, RouterDependencies{
		API:            NewAPI(&nopLogger, svc),
		Health:         opts.health,
		Metrics:        m,
		AllowedOrigins: []string{"https://bodi.ng"},
	})
	return &testEnv{handler: handler, bus: bus, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	rec := env.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	root := decode[rootResponse](t, rec)
	if root.Status != "online" {
		t.Fatalf("expected status online, got %q", root.Status)
	}

	rec = env.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	degraded := newTestEnv(t, envOptions{health: HealthFunc(func(context.Context) error {
		return errors.New("ledger unreachable")
	})})
	rec = degraded.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	payload := decode[map[string]string](t, rec)
	if payload["status"] != "degraded" {
		t.Fatalf("expected degraded, got %q", payload["status"])
	}
}

func TestUnknownPathAndMethod(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/nothing-here", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.do(t, http.MethodDelete, "/api/properties", "").Code)
}

func TestRequestIDAndCORS(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set(requestIDHeader, "req-123")
	req.Header.Set("Origin", "https://bodi.ng")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
	assert.Equal(t, "https://bodi.ng", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://bodi.ng")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/properties", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	env.do(t, http.MethodGet, "/api/properties/LAG-001", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="GET /api/properties/{id}"`)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"unavailable", domain.ErrUnavailable, http.StatusServiceUnavailable},
		{"external", domain.ErrExternalService, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, detail)
		})
	}
}

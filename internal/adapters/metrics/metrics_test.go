package metrics

import (
	"Bodi/internal/adapters/eventbus"
	"Bodi/internal/core/domain"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsBusEvents(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := eventbus.NewInMemoryEventBus(&nopLogger)
	m := New()
	m.Subscribe(bus)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, domain.TopicEscrowTransitioned, domain.EscrowTransitioned{To: domain.EscrowDeposited}))
	require.NoError(t, bus.Publish(ctx, domain.TopicEscrowTransitioned, domain.EscrowTransitioned{To: domain.EscrowReleased}))
	require.NoError(t, bus.Publish(ctx, domain.TopicEscrowTransitioned, domain.EscrowTransitioned{To: domain.EscrowReleased}))
	require.NoError(t, bus.Publish(ctx, domain.TopicEmergencyTriggered, domain.EmergencyAlert{}))
	require.NoError(t, bus.Publish(ctx, domain.TopicPropertyListed, domain.Property{}))
	bus.Wait()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.escrowEdges.WithLabelValues("released")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.escrowEdges.WithLabelValues("deposited")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emergencies))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listingEvents.WithLabelValues("listed")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "GET /api/properties", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `bodi_http_requests_total{method="GET",route="GET /api/properties",status="200"} 1`)
	assert.Contains(t, string(body), "bodi_http_request_duration_seconds_bucket")
}

// Package metrics exposes Prometheus collectors for the HTTP surface and
// for marketplace events seen on the bus.
package metrics

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bodi"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	escrowEdges   *prometheus.CounterVec
	emergencies   prometheus.Counter
	listingEvents *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		escrowEdges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "escrow",
			Name:      "transitions_total",
			Help:      "Escrow state transitions by target status.",
		}, []string{"to"}),
		emergencies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "safety",
			Name:      "emergency_alerts_total",
			Help:      "Emergency alerts raised.",
		}),
		listingEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "listing_events_total",
			Help:      "Listing changes by kind.",
		}, []string{"kind"}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(took.Seconds())
}

// Subscribe counts domain events published on bus.
func (m *Metrics) Subscribe(bus ports.EventBus) {
	bus.Subscribe(domain.TopicEscrowTransitioned, func(_ context.Context, ev ports.Event) error {
		if t, ok := ev.Data.(domain.EscrowTransitioned); ok {
			m.escrowEdges.WithLabelValues(string(t.To)).Inc()
		}
		return nil
	})
	bus.Subscribe(domain.TopicEmergencyTriggered, func(context.Context, ports.Event) error {
		m.emergencies.Inc()
		return nil
	})
	for topic, kind := range map[string]string{
		domain.TopicPropertyListed:  "listed",
		domain.TopicPropertyUpdated: "updated",
		domain.TopicPropertyRemoved: "removed",
	} {
		kind := kind
		bus.Subscribe(topic, func(context.Context, ports.Event) error {
			m.listingEvents.WithLabelValues(kind).Inc()
			return nil
		})
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Package httpapi is the JSON HTTP surface of the marketplace.
package httpapi

import (
	"Bodi/internal/adapters/metrics"
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HealthService is probed by /healthz.
type HealthService interface {
	Probe(ctx context.Context) error
}

// HealthFunc adapts a function to HealthService.
type HealthFunc func(ctx context.Context) error

func (f HealthFunc) Probe(ctx context.Context) error { return f(ctx) }

// RouterDependencies collects handler dependencies. Everything but API is optional.
type RouterDependencies struct {
	API            *API
	Health         HealthService
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewRouter wires the HTTP routes exposed by the backend.
func NewRouter(baseLogger *zerolog.Logger, deps RouterDependencies) http.Handler {
	log := baseLogger.With().Str("component", "http").Logger()
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		var handler http.Handler = h
		if deps.Metrics != nil {
			handler = instrument(deps.Metrics, pattern, handler)
		}
		mux.Handle(pattern, handler)
	}

	handle("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, rootResponse{Message: "BODI Backend v2.0 - All Features Active", Status: "online"})
	})

	handle("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{"status": "ok"}
		if deps.Health != nil {
			if err := deps.Health.Probe(ctx); err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("Health probe failed")
				status = http.StatusServiceUnavailable
				payload["status"] = "degraded"
				payload["error"] = err.Error()
			}
		}
		respondJSON(w, status, payload)
	})

	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}
	if deps.API != nil {
		deps.API.register(handle)
	}

	handler := recoverMiddleware(mux)
	handler = loggingMiddleware(handler)
	if len(deps.AllowedOrigins) > 0 {
		handler = corsMiddleware(deps.AllowedOrigins)(handler)
	}
	return requestIDMiddleware(log, handler)
}

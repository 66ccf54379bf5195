package httpapi

import (
	"Bodi/internal/shared/config"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server owns the HTTP listener lifecycle.
type Server struct {
	httpServer *http.Server
	log        zerolog.Logger
}

// New constructs a Server around the router.
func New(baseLogger *zerolog.Logger, cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: baseLogger.With().Str("component", "http_server").Logger(),
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

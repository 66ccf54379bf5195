package telegram

import (
	"Bodi/internal/shared/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const jobQueueSize = 100

// BotServer runs the bot in polling or webhook mode and feeds updates to a
// worker pool.
type BotServer struct {
	api    *tgbotapi.BotAPI
	router *Router
	cfg    *config.BotConfig
	log    zerolog.Logger
}

func NewBotServer(
	api *tgbotapi.BotAPI,
	router *Router,
	cfg *config.BotConfig,
	baseLogger *zerolog.Logger,
) *BotServer {
	return &BotServer{
		api:    api,
		router: router,
		cfg:    cfg,
		log:    baseLogger.With().Str("component", "bot_server").Logger(),
	}
}

// Start blocks until ctx is cancelled.
func (s *BotServer) Start(ctx context.Context) error {
	s.log.Info().Str("mode", s.cfg.Mode).Msg("Starting bot server...")

	switch s.cfg.Mode {
	case config.BotModePolling:
		return s.startPolling(ctx)
	case config.BotModeWebhook:
		return s.startWebhook(ctx)
	default:
		return fmt.Errorf("unknown bot mode: %s", s.cfg.Mode)
	}
}

// runWorkers starts the pool and returns a WaitGroup that is done once
// jobs is closed and drained.
func (s *BotServer) runWorkers(ctx context.Context, jobs <-chan tgbotapi.Update) *sync.WaitGroup {
	var wg sync.WaitGroup
	for w := 1; w <= s.cfg.Polling.WorkerPoolSize; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := s.log.With().Int("worker_id", id).Logger()
			log.Debug().Msg("Starting worker")
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-jobs:
					if !ok {
						return
					}
					s.router.HandleUpdate(log.WithContext(context.Background()), &job)
				}
			}
		}(w)
	}
	return &wg
}

func (s *BotServer) startPolling(ctx context.Context) error {
	s.log.Info().Int("workers", s.cfg.Polling.WorkerPoolSize).Msg("Starting bot in POLLING mode")

	if _, err := s.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete webhook (continuing anyway)")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.api.GetUpdatesChan(u)

	jobs := make(chan tgbotapi.Update, jobQueueSize)
	wg := s.runWorkers(ctx, jobs)

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			s.api.StopReceivingUpdates()
			wg.Wait()
			s.log.Info().Msg("Polling stopped gracefully")
			return nil
		case update := <-updates:
			jobs <- update
		}
	}
}

func (s *BotServer) startWebhook(ctx context.Context) error {
	s.log.Info().
		Int("port", s.cfg.Webhook.ListenPort).
		Int("workers", s.cfg.Polling.WorkerPoolSize).
		Msg("Starting bot in WEBHOOK mode")

	path := "/webhook/" + s.api.Token
	wh, err := tgbotapi.NewWebhook(s.cfg.Webhook.URL + path)
	if err != nil {
		return fmt.Errorf("building webhook config: %w", err)
	}
	if _, err := s.api.Request(wh); err != nil {
		return fmt.Errorf("setting webhook: %w", err)
	}

	info, err := s.api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("reading webhook info: %w", err)
	}
	if info.LastErrorDate != 0 {
		s.log.Error().Str("error_message", info.LastErrorMessage).Msg("Telegram webhook has a last error")
	}

	jobs := make(chan tgbotapi.Update, jobQueueSize)
	wg := s.runWorkers(ctx, jobs)

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+path, func(w http.ResponseWriter, r *http.Request) {
		update, err := s.api.HandleUpdate(r)
		if err != nil {
			s.log.Warn().Err(err).Msg("Rejected webhook payload")
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		select {
		case jobs <- *update:
		case <-r.Context().Done():
		}
	})

	// TLS is terminated by the reverse proxy in front of this listener.
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.cfg.Webhook.ListenPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		if runErr != nil {
			s.log.Error().Err(runErr).Msg("Webhook HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	close(jobs)
	wg.Wait()
	s.log.Info().Msg("Webhook server stopped")
	return runErr
}

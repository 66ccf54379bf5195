package main

import (
	"Bodi/internal/adapters/eventbus"
	"Bodi/internal/adapters/httpapi"
	"Bodi/internal/adapters/llm"
	"Bodi/internal/adapters/memory"
	"Bodi/internal/adapters/metrics"
	"Bodi/internal/adapters/objectstore"
	"Bodi/internal/adapters/postgres"
	"Bodi/internal/adapters/security"
	"Bodi/internal/adapters/sqlite"
	"Bodi/internal/adapters/websearch"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"Bodi/internal/generator"
	"Bodi/internal/geo"
	"Bodi/internal/shared/config"
	"Bodi/internal/shared/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// app is the fully wired backend shared by the serve, bot and mcp commands.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	bus     ports.EventBus
	places  *geo.KnowledgeBase
	ledger  ports.LedgerPort
	metrics *metrics.Metrics
	svc     httpapi.Services
}

// loadConfig is the first step of every command: configuration, then the
// logger built from it.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("loading configuration: %w", err)
	}
	baseLogger := logger.New(cfg.DevMode(), cfg.LogLevel)
	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("ledger", cfg.Ledger.Driver).
		Bool("storage", cfg.Storage.Enabled()).
		Msg("Configuration loaded")
	return cfg, baseLogger, nil
}

func newApp(ctx context.Context, cfg *config.Config, baseLogger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: baseLogger}

	places, err := geo.Load()
	if err != nil {
		return nil, err
	}
	a.places = places

	catalog, err := generator.New(generator.Config{
		Total: cfg.Generator.Total,
		Seed:  cfg.Generator.Seed,
	}).Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating catalog: %w", err)
	}
	store := memory.NewStore(&baseLogger)
	store.Seed(memory.DefaultSeed(catalog, time.Now().UTC()))
	baseLogger.Info().Int("properties", len(catalog)).Msg("Catalog generated")

	a.bus = eventbus.NewInMemoryEventBus(&baseLogger)
	a.metrics = metrics.New()
	a.metrics.Subscribe(a.bus)

	completion, err := llm.NewGroqClient(llm.Config{
		APIKey:  cfg.AI.GroqAPIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, &baseLogger)
	if err != nil {
		if !errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		baseLogger.Warn().Msg("GROQ_API_KEY not set, the assistant will answer with a fixed reply")
	}

	search, err := websearch.NewTavilyClient(websearch.Config{
		APIKey:  cfg.Search.TavilyAPIKey,
		BaseURL: cfg.Search.BaseURL,
		Timeout: cfg.Search.Timeout,
	}, &baseLogger)
	if err != nil {
		if !errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		baseLogger.Warn().Msg("TAVILY_API_KEY not set, semantic search is disabled")
	}

	var images ports.ImageStore
	if cfg.Storage.Enabled() {
		s3Store, err := objectstore.New(ctx, objectstore.Config{
			Bucket:          cfg.Storage.Bucket,
			Region:          cfg.Storage.Region,
			Endpoint:        cfg.Storage.Endpoint,
			PathStyle:       cfg.Storage.PathStyle,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			PublicBaseURL:   cfg.Storage.PublicBaseURL,
			UploadTTL:       cfg.Storage.UploadTTL,
		}, &baseLogger)
		if err != nil {
			return nil, fmt.Errorf("initializing image storage: %w", err)
		}
		images = s3Store
	}

	ids := services.NewIDGenerator(cfg.Generator.Seed)
	a.svc = httpapi.Services{
		Properties: services.NewPropertyService(store, a.bus, &baseLogger),
		Users:      services.NewUserService(store, a.bus, &baseLogger),
		Escrow:     services.NewEscrowService(store, a.bus, ids, &baseLogger),
		Reviews:    services.NewReviewService(store, a.bus, ids, &baseLogger),
		Safety:     services.NewSafetyService(store, a.bus, ids, &baseLogger),
		Community:  services.NewCommunityService(store, a.bus, ids, &baseLogger),
		Landlord:   services.NewLandlordService(store, images, &baseLogger),
		Assistant:  services.NewAssistantService(store, completion, search, places, &baseLogger),
		Places:     places,
	}

	if err := a.openLedger(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// openLedger connects the configured audit ledger and subscribes the
// recorder to the bus.
func (a *app) openLedger(ctx context.Context) error {
	switch a.cfg.Ledger.Driver {
	case config.LedgerPostgres:
		db, err := postgres.NewDB(ctx, a.cfg.Ledger.DSN, &a.log)
		if err != nil {
			return fmt.Errorf("connecting to postgres ledger: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return err
		}
		a.ledger = postgres.NewLedgerRepository(db, &a.log)
	case config.LedgerSQLite:
		l, err := sqlite.Open(ctx, a.cfg.Ledger.DSN, &a.log)
		if err != nil {
			return err
		}
		a.ledger = l
	default:
		a.log.Info().Msg("No audit ledger configured")
		return nil
	}

	sec, err := security.NewAESServiceFromHex(a.cfg.EncryptionKey, &a.log)
	if err != nil {
		a.ledger.Close()
		return fmt.Errorf("initializing security service: %w", err)
	}
	a.svc.Audit = services.NewAuditRecorder(a.ledger, sec, &a.log)
	a.svc.Audit.Register(a.bus)
	return nil
}

// probe backs /healthz.
func (a *app) probe(ctx context.Context) error {
	if a.ledger == nil {
		return nil
	}
	return a.ledger.Ping(ctx)
}

// close waits for in-flight event handlers so the ledger sees every
// transition, then releases the ledger.
func (a *app) close() {
	a.bus.Wait()
	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			a.log.Error().Err(err).Msg("Failed to close ledger")
		}
	}
	a.log.Info().Msg("Shutdown complete")
}

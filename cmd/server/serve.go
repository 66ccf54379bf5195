package main

import (
	"Bodi/internal/adapters/httpapi"
	"Bodi/internal/adapters/telegram"
	"Bodi/internal/bot"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var withBot bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: "Start the HTTP API. With --bot the Telegram assistant runs in the same\n" +
			"process, so emergency alerts raised over HTTP reach the safety chat.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), withBot)
		},
	}
	cmd.Flags().BoolVar(&withBot, "bot", false, "also run the Telegram bot")
	return cmd
}

func runServe(parent context.Context, withBot bool) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if withBot {
		if err := cfg.ValidateBot(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	router := httpapi.NewRouter(&log, httpapi.RouterDependencies{
		API:            httpapi.NewAPI(&log, a.svc),
		Health:         httpapi.HealthFunc(a.probe),
		Metrics:        a.metrics,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	server := httpapi.New(&log, cfg.HTTP, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if withBot {
		orchestrator := telegram.NewOrchestrator(cfg, a.botDeps(), a.bus, &log)
		g.Go(func() error { return orchestrator.Start(gctx) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Server stopped with error")
		return err
	}
	return nil
}

func (a *app) botDeps() bot.Deps {
	return bot.Deps{
		Properties: a.svc.Properties,
		Assistant:  a.svc.Assistant,
		Places:     a.places,
		Sessions:   bot.NewSessions(),
	}
}

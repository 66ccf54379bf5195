package telegram

import (
	"Bodi/internal/bot"
	_ "Bodi/internal/bot/handlers"
	"Bodi/internal/core/ports"
	"Bodi/internal/shared/config"
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Orchestrator connects the assistant bot, registers its handlers and
// runs it until the context ends.
type Orchestrator struct {
	cfg        *config.Config
	deps       bot.Deps
	bus        ports.EventBus
	baseLogger *zerolog.Logger
}

// NewOrchestrator prepares the bot. deps.Client is filled in on Start.
func NewOrchestrator(
	cfg *config.Config,
	deps bot.Deps,
	bus ports.EventBus,
	baseLogger *zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		deps:       deps,
		bus:        bus,
		baseLogger: baseLogger,
	}
}

func (o *Orchestrator) Start(ctx context.Context) error {
	log := o.baseLogger.With().Str("bot", "assistant").Logger()

	api, err := tgbotapi.NewBotAPI(o.cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("connecting to telegram: %w", err)
	}
	api.Debug = o.cfg.DevMode()
	log.Info().Str("username", api.Self.UserName).Msg("Bot API connected")

	client := NewClient(api, &log)
	deps := o.deps
	deps.Client = client
	if deps.Sessions == nil {
		deps.Sessions = bot.NewSessions()
	}

	router := NewRouter(client, &log)
	menu := bot.RegisterAllHandlers(router, deps, &log)
	if err := client.SetMenuCommands(ctx, menu); err != nil {
		log.Warn().Err(err).Msg("Continuing without a command menu")
	}

	if o.cfg.Bot.SafetyChatID != 0 && o.bus != nil {
		NewSafetyNotifier(client, o.cfg.Bot.SafetyChatID, &log).Register(o.bus)
	}

	return NewBotServer(api, router, &o.cfg.Bot, &log).Start(ctx)
}

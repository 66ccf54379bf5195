package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/ports"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewStartHandler)
}

// startHandler greets the user and resets the conversation.
type startHandler struct {
	log      zerolog.Logger
	client   ports.BotClientPort
	sessions *bot.Sessions
}

func NewStartHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &startHandler{
		log:      baseLogger.With().Str("component", "start_handler").Logger(),
		client:   deps.Client,
		sessions: deps.Sessions,
	}
}

func (h *startHandler) Command() string     { return "start" }
func (h *startHandler) Description() string { return "Meet BODI, your housing assistant" }

func (h *startHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	h.sessions.Reset(update.ChatID)

	name := update.Username
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hello %s\\! I'm *BODI*, your guide to verified homes in Nigeria\\.\n\n", messages.Escape(name)) +
		"Tell me what you're looking for in your own words, e\\.g\\. _\"2 bedroom in Yaba under 1m\"_\\.\n\n" +
		"/search `location` `max price` lists matching homes\n" +
		"/nearby `neighborhood` tells you about an area\n" +
		"/lang `en|pidgin` switches my language"

	if err := h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).WithText(text).Build()); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}
	h.log.Info().Int64("chat_id", update.ChatID).Msg("Conversation started")
	return nil
}

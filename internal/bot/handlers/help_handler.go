package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewHelpHandler)
}

type helpHandler struct {
	client ports.BotClientPort
}

func NewHelpHandler(deps bot.Deps, _ *zerolog.Logger) ports.CommandHandler {
	return &helpHandler{client: deps.Client}
}

func (h *helpHandler) Command() string     { return "help" }
func (h *helpHandler) Description() string { return "What I can do" }

func (h *helpHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	text := "Here's what I can do:\n\n" +
		"/search Yaba 1000000 → homes in Yaba up to ₦1,000,000\n" +
		"/property LAG-001 → full details of a listing\n" +
		"/nearby Lekki → what an area is like and what's close by\n" +
		"/lang pidgin → make I yarn you for Pidgin\n\n" +
		"Or just ask me anything about renting safely."
	return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).WithPlainText(text).Build())
}

package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewLangHandler)
}

type langHandler struct {
	client   ports.BotClientPort
	sessions *bot.Sessions
}

func NewLangHandler(deps bot.Deps, _ *zerolog.Logger) ports.CommandHandler {
	return &langHandler{client: deps.Client, sessions: deps.Sessions}
}

func (h *langHandler) Command() string     { return "lang" }
func (h *langHandler) Description() string { return "Switch between English and Pidgin" }

func (h *langHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	var reply string
	switch strings.ToLower(update.Args) {
	case domain.LanguageEnglish, "english":
		h.sessions.SetLanguage(update.ChatID, domain.LanguageEnglish)
		reply = "Okay, I'll reply in English."
	case domain.LanguagePidgin:
		h.sessions.SetLanguage(update.ChatID, domain.LanguagePidgin)
		reply = "No wahala, I go dey yarn you for Pidgin."
	default:
		reply = "Usage: /lang en or /lang pidgin"
	}
	return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).WithPlainText(reply).Build())
}

package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"context"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterText(NewChatHandler)
}

// chatHandler answers free text with the assistant, replaying the chat's
// recent turns.
type chatHandler struct {
	log       zerolog.Logger
	client    ports.BotClientPort
	assistant *services.AssistantService
	sessions  *bot.Sessions
}

func NewChatHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.TextHandler {
	return &chatHandler{
		log:       baseLogger.With().Str("component", "chat_handler").Logger(),
		client:    deps.Client,
		assistant: deps.Assistant,
		sessions:  deps.Sessions,
	}
}

func (h *chatHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	turn := domain.ChatMessage{Role: domain.RoleUser, Content: update.Text}
	history := append(h.sessions.History(update.ChatID), turn)

	reply := h.assistant.Chat(ctx, services.ChatRequest{
		Messages: history,
		Language: h.sessions.Language(update.ChatID),
	})
	if reply.Error != "" {
		h.log.Warn().Str("error", reply.Error).Int64("chat_id", update.ChatID).Msg("Assistant reply degraded")
	} else {
		h.sessions.Append(update.ChatID, turn, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply.Response})
	}

	// Model output is free text, so it is sent without markup parsing.
	return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(reply.Response).
		WithPlainMode().
		Build())
}

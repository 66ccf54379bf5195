package telegram

import (
	"Bodi/internal/core/ports"
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Router is the bot facade. It holds every registered handler and routes
// incoming updates to the right one.
type Router struct {
	log              zerolog.Logger
	botClient        ports.BotClientPort
	commandHandlers  map[string]ports.CommandHandler
	callbackHandlers map[string]ports.CallbackHandler
	textHandler      ports.TextHandler
}

func NewRouter(botClient ports.BotClientPort, baseLogger *zerolog.Logger) *Router {
	return &Router{
		log:              baseLogger.With().Str("component", "tg_router").Logger(),
		botClient:        botClient,
		commandHandlers:  make(map[string]ports.CommandHandler),
		callbackHandlers: make(map[string]ports.CallbackHandler),
	}
}

func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	cmd := handler.Command()
	r.commandHandlers[cmd] = handler
	r.log.Info().Str("command", cmd).Msg("Registered new command handler")
}

func (r *Router) RegisterCallbackHandler(handler ports.CallbackHandler) {
	prefix := handler.Prefix()
	r.callbackHandlers[prefix] = handler
	r.log.Info().Str("prefix", prefix).Msg("Registered new callback handler")
}

// SetTextHandler registers the single handler for plain messages.
func (r *Router) SetTextHandler(handler ports.TextHandler) {
	r.textHandler = handler
}

// HandleUpdate is the entry point for every update from Telegram.
func (r *Router) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	botUpdate, isSupported := parseUpdate(update)
	if !isSupported {
		r.log.Debug().Int("update_id", update.UpdateID).Msg("Ignoring unsupported update type")
		return
	}

	ctxLogger := r.log.With().
		Int64("user_id", botUpdate.UserID).
		Int64("chat_id", botUpdate.ChatID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	if botUpdate.Command != "" {
		if handler, ok := r.commandHandlers[botUpdate.Command]; ok {
			ctxLogger.Info().Str("handler", botUpdate.Command).Msg("Routing to command handler")
			if err := handler.Handle(ctx, botUpdate); err != nil {
				ctxLogger.Error().Err(err).Msg("Command handler failed")
			}
			return
		}
		r.reply(ctx, botUpdate.ChatID, "I don't know that command. Type /help to see what I can do.")
		return
	}

	if botUpdate.CallbackData != nil {
		for prefix, handler := range r.callbackHandlers {
			if strings.HasPrefix(*botUpdate.CallbackData, prefix) {
				ctxLogger.Info().Str("handler", prefix).Str("data", *botUpdate.CallbackData).Msg("Routing to callback handler")
				if err := handler.Handle(ctx, botUpdate); err != nil {
					ctxLogger.Error().Err(err).Msg("Callback handler failed")
				}
				return
			}
		}
		ctxLogger.Warn().Str("data", *botUpdate.CallbackData).Msg("No callback handler found")
		return
	}

	if r.textHandler != nil && strings.TrimSpace(botUpdate.Text) != "" {
		if err := r.textHandler.Handle(ctx, botUpdate); err != nil {
			ctxLogger.Error().Err(err).Msg("Text handler failed")
		}
		return
	}

	r.reply(ctx, botUpdate.ChatID, "Type /start to begin.")
}

func (r *Router) reply(ctx context.Context, chatID int64, text string) {
	if err := r.botClient.SendMessage(ctx, ports.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to send fallback reply")
	}
}

// parseUpdate converts a tgbotapi.Update into our simplified struct.
func parseUpdate(update *tgbotapi.Update) (*ports.BotUpdate, bool) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.From == nil {
			return nil, false
		}
		return &ports.BotUpdate{
			MessageID:    cb.Message.MessageID,
			ChatID:       cb.Message.Chat.ID,
			UserID:       cb.From.ID,
			Username:     cb.From.UserName,
			CallbackID:   cb.ID,
			CallbackData: &cb.Data,
		}, true
	}

	if msg := update.Message; msg != nil {
		if msg.From == nil || msg.Chat == nil {
			return nil, false
		}
		return &ports.BotUpdate{
			MessageID: msg.MessageID,
			ChatID:    msg.Chat.ID,
			UserID:    msg.From.ID,
			Username:  msg.From.UserName,
			Text:      msg.Text,
			Command:   msg.Command(),
			Args:      strings.TrimSpace(msg.CommandArguments()),
		}, true
	}

	return nil, false
}

package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewPropertyHandler)
	bot.RegisterCallback(NewPropertyCallbackHandler)
}

// propertyHandler serves /property <id> and the "prop:" inline buttons.
type propertyHandler struct {
	log        zerolog.Logger
	client     ports.BotClientPort
	properties *services.PropertyService
}

func newPropertyHandler(deps bot.Deps, baseLogger *zerolog.Logger) *propertyHandler {
	return &propertyHandler{
		log:        baseLogger.With().Str("component", "property_handler").Logger(),
		client:     deps.Client,
		properties: deps.Properties,
	}
}

func NewPropertyHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return newPropertyHandler(deps, baseLogger)
}

func NewPropertyCallbackHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CallbackHandler {
	return &propertyCallback{newPropertyHandler(deps, baseLogger)}
}

func (h *propertyHandler) Command() string     { return "property" }
func (h *propertyHandler) Description() string { return "Show one listing by ID" }

func (h *propertyHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	id := strings.ToUpper(strings.TrimSpace(update.Args))
	if id == "" {
		return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithPlainText("Usage: /property <id>, e.g. /property LAG-001").Build())
	}
	return h.show(ctx, update.ChatID, id)
}

func (h *propertyHandler) show(ctx context.Context, chatID int64, id string) error {
	detail, err := h.properties.Detail(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return h.client.SendMessage(ctx, messages.NewBuilder(chatID).
			WithPlainText("I can't find a listing with ID "+id+".").Build())
	}
	if err != nil {
		h.log.Error().Err(err).Str("property_id", id).Msg("Loading property failed")
		return err
	}
	return h.client.SendMessage(ctx, messages.NewBuilder(chatID).WithText(messages.PropertyCard(detail)).Build())
}

type propertyCallback struct {
	*propertyHandler
}

func (c *propertyCallback) Prefix() string { return messages.PropertyCallbackPrefix }

func (c *propertyCallback) Handle(ctx context.Context, update *ports.BotUpdate) error {
	if update.CallbackID != "" {
		if err := c.client.AnswerCallback(ctx, update.CallbackID, ""); err != nil {
			c.log.Warn().Err(err).Msg("Failed to answer callback")
		}
	}
	id := strings.TrimPrefix(*update.CallbackData, messages.PropertyCallbackPrefix)
	return c.show(ctx, update.ChatID, id)
}

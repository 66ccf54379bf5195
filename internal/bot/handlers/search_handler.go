package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"Bodi/internal/geo"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// maxSearchResults keeps the reply within one screen of inline buttons.
const maxSearchResults = 8

func init() {
	bot.RegisterCommand(NewSearchHandler)
}

type searchHandler struct {
	log        zerolog.Logger
	client     ports.BotClientPort
	properties *services.PropertyService
	places     *geo.KnowledgeBase
}

func NewSearchHandler(deps bot.Deps, baseLogger *zerolog.Logger) ports.CommandHandler {
	return &searchHandler{
		log:        baseLogger.With().Str("component", "search_handler").Logger(),
		client:     deps.Client,
		properties: deps.Properties,
		places:     deps.Places,
	}
}

func (h *searchHandler) Command() string     { return "search" }
func (h *searchHandler) Description() string { return "Find homes by location and budget" }

func (h *searchHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	filter, ok := ParseSearchArgs(update.Args)
	if !ok {
		return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithPlainText("Usage: /search <location> [max price], e.g. /search Yaba 1000000").Build())
	}

	found, err := h.properties.List(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Listing properties failed")
		return err
	}
	if len(found) == 0 {
		return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithPlainText(h.noResults(filter.Location)).Build())
	}

	shown := found
	if len(shown) > maxSearchResults {
		shown = shown[:maxSearchResults]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found *%d* home", len(found))
	if len(found) != 1 {
		b.WriteString("s")
	}
	fmt.Fprintf(&b, " in %s", messages.Escape(filter.Location))
	if filter.MaxPrice != nil {
		fmt.Fprintf(&b, " up to %s", messages.Escape(domain.FormatNaira(*filter.MaxPrice)))
	}
	b.WriteString(":\n")
	for _, p := range shown {
		b.WriteString("\n")
		b.WriteString(messages.PropertyLine(p))
		b.WriteString("\n")
	}
	if len(found) > len(shown) {
		fmt.Fprintf(&b, "\n_…and %d more\\. Narrow your search to see them\\._", len(found)-len(shown))
	}

	return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
		WithText(b.String()).
		WithInlineButtons(messages.PropertyButtons(shown)).
		Build())
}

// noResults suggests the neighborhoods next to the one searched for.
func (h *searchHandler) noResults(location string) string {
	msg := fmt.Sprintf("No listings in %s yet.", location)
	if h.places == nil {
		return msg
	}
	var nearby []string
	for _, n := range h.places.ExtractContext(location).Neighborhoods {
		nearby = append(nearby, n.Details.Nearby...)
	}
	if len(nearby) > 0 {
		msg += " Try nearby: " + strings.Join(nearby, ", ") + "."
	}
	return msg
}

// ParseSearchArgs reads "<location words> [max price]". A trailing number
// is the budget; commas and a leading ₦ are allowed in it.
func ParseSearchArgs(args string) (services.PropertyFilter, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return services.PropertyFilter{}, false
	}

	var filter services.PropertyFilter
	last := strings.TrimPrefix(strings.ReplaceAll(fields[len(fields)-1], ",", ""), "₦")
	if price, err := strconv.ParseFloat(last, 64); err == nil && len(fields) > 1 {
		filter.MaxPrice = &price
		fields = fields[:len(fields)-1]
	}
	filter.Location = strings.Join(fields, " ")
	return filter, true
}

package handlers

import (
	"Bodi/internal/bot"
	"Bodi/internal/bot/messages"
	"Bodi/internal/core/ports"
	"Bodi/internal/geo"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

func init() {
	bot.RegisterCommand(NewNearbyHandler)
}

type nearbyHandler struct {
	client ports.BotClientPort
	places *geo.KnowledgeBase
}

func NewNearbyHandler(deps bot.Deps, _ *zerolog.Logger) ports.CommandHandler {
	return &nearbyHandler{client: deps.Client, places: deps.Places}
}

func (h *nearbyHandler) Command() string     { return "nearby" }
func (h *nearbyHandler) Description() string { return "Learn about a neighborhood" }

func (h *nearbyHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	name := strings.TrimSpace(update.Args)
	if name == "" {
		return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithPlainText("Usage: /nearby <neighborhood>, e.g. /nearby Yaba").Build())
	}

	city, info, ok := FindNeighborhood(h.places, name)
	if !ok {
		return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).
			WithPlainText(fmt.Sprintf("I don't know %s yet. I cover %s.", name, strings.Join(h.places.Cities(), ", "))).Build())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s, %s*\n", messages.Escape(info.Name), messages.Escape(city))
	if info.Zone != "" {
		fmt.Fprintf(&b, "🗺 %s\n", messages.Escape(info.Zone))
	}
	if info.KnownFor != "" {
		fmt.Fprintf(&b, "💡 Known for %s\n", messages.Escape(info.KnownFor))
	}
	if len(info.Landmarks) > 0 {
		fmt.Fprintf(&b, "📌 %s\n", messages.Escape(strings.Join(info.Landmarks, ", ")))
	}
	if len(info.Nearby) > 0 {
		fmt.Fprintf(&b, "↔️ Close to %s\n", messages.Escape(strings.Join(info.Nearby, ", ")))
	}
	fmt.Fprintf(&b, "\nTry /search %s", messages.Escape(info.Name))

	return h.client.SendMessage(ctx, messages.NewBuilder(update.ChatID).WithText(b.String()).Build())
}

// FindNeighborhood looks a neighborhood up by name in every city,
// ignoring case.
func FindNeighborhood(kb *geo.KnowledgeBase, name string) (string, geo.Neighborhood, bool) {
	for _, city := range kb.Cities() {
		for _, n := range kb.Neighborhoods(city) {
			if strings.EqualFold(n, name) {
				info, ok := kb.NeighborhoodInfo(n, city)
				return city, info, ok
			}
		}
	}
	return "", geo.Neighborhood{}, false
}

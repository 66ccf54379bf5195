package telegram

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// SafetyNotifier forwards emergency alerts and escrow disputes from the
// event bus to the safety team's chat.
type SafetyNotifier struct {
	client ports.BotClientPort
	chatID int64
	log    zerolog.Logger
}

func NewSafetyNotifier(client ports.BotClientPort, chatID int64, baseLogger *zerolog.Logger) *SafetyNotifier {
	return &SafetyNotifier{
		client: client,
		chatID: chatID,
		log:    baseLogger.With().Str("component", "safety_notifier").Logger(),
	}
}

// Register subscribes the notifier to the topics it forwards.
func (n *SafetyNotifier) Register(bus ports.EventBus) {
	bus.Subscribe(domain.TopicEmergencyTriggered, n.handleEmergency)
	bus.Subscribe(domain.TopicEscrowTransitioned, n.handleEscrow)
	n.log.Info().Int64("chat_id", n.chatID).Msg("Forwarding safety events to Telegram")
}

func (n *SafetyNotifier) handleEmergency(ctx context.Context, ev ports.Event) error {
	alert, ok := ev.Data.(domain.EmergencyAlert)
	if !ok {
		n.log.Error().Str("topic", ev.Topic).Msg("Received bad emergency event from bus")
		return nil
	}

	if err := n.client.SendMessage(ctx, ports.SendMessageParams{
		ChatID:    n.chatID,
		Text:      emergencyText(alert),
		ParseMode: tgbotapi.ModeMarkdownV2,
	}); err != nil {
		return fmt.Errorf("sending emergency alert %s: %w", alert.ID, err)
	}
	if err := n.client.SendLocation(ctx, ports.SendLocationParams{
		ChatID:    n.chatID,
		Latitude:  alert.Latitude,
		Longitude: alert.Longitude,
	}); err != nil {
		return fmt.Errorf("sending emergency location %s: %w", alert.ID, err)
	}

	n.log.Info().Str("alert_id", alert.ID).Msg("Emergency alert forwarded")
	return nil
}

func (n *SafetyNotifier) handleEscrow(ctx context.Context, ev ports.Event) error {
	t, ok := ev.Data.(domain.EscrowTransitioned)
	if !ok || t.To != domain.EscrowDisputed {
		return nil
	}

	reason := ""
	if t.Transaction.DisputeReason != nil {
		reason = *t.Transaction.DisputeReason
	}
	text := fmt.Sprintf("⚖️ *Escrow dispute*\nTransaction: `%s`\nProperty: `%s`\nAmount: %s\nReason: %s",
		esc(t.Transaction.ID),
		esc(t.Transaction.PropertyID),
		esc(domain.FormatNaira(t.Transaction.AmountNGN)),
		esc(reason),
	)
	if err := n.client.SendMessage(ctx, ports.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: tgbotapi.ModeMarkdownV2,
	}); err != nil {
		return fmt.Errorf("sending dispute notice %s: %w", t.Transaction.ID, err)
	}
	return nil
}

func emergencyText(a domain.EmergencyAlert) string {
	var b strings.Builder
	b.WriteString("🚨 *EMERGENCY ALERT*\n")
	fmt.Fprintf(&b, "User: `%s`\n", esc(a.UserID))
	fmt.Fprintf(&b, "Property: `%s`\n", esc(a.PropertyID))
	fmt.Fprintf(&b, "Share: `%s`\n", esc(a.LocationShareID))
	fmt.Fprintf(&b, "Emergency contact: %s\n", esc(a.EmergencyContact))
	fmt.Fprintf(&b, "Position: %s\n", esc(fmt.Sprintf("%.5f, %.5f", a.Latitude, a.Longitude)))
	if a.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", esc(a.Message))
	}
	fmt.Fprintf(&b, "At: %s", esc(a.TriggeredAt.UTC().Format("2006-01-02 15:04:05 MST")))
	return b.String()
}

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

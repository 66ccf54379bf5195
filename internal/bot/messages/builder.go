// Package messages builds the bot's outgoing MarkdownV2 messages.
package messages

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// PropertyCallbackPrefix opens a listing from an inline button.
const PropertyCallbackPrefix = "prop:"

// Builder helps construct SendMessageParams.
type Builder struct {
	params ports.SendMessageParams
}

// NewBuilder starts a MarkdownV2 message.
func NewBuilder(chatID int64) *Builder {
	return &Builder{
		params: ports.SendMessageParams{
			ChatID:    chatID,
			ParseMode: tgbotapi.ModeMarkdownV2,
		},
	}
}

// WithText sets text that is already MarkdownV2.
func (b *Builder) WithText(text string) *Builder {
	b.params.Text = text
	return b
}

// WithPlainText sets text that is escaped for MarkdownV2.
func (b *Builder) WithPlainText(text string) *Builder {
	b.params.Text = Escape(text)
	return b
}

// WithPlainMode sends the text without any markup parsing.
func (b *Builder) WithPlainMode() *Builder {
	b.params.ParseMode = ""
	return b
}

// WithRemoveKeyboard removes the reply keyboard.
func (b *Builder) WithRemoveKeyboard() *Builder {
	b.params.RemoveKeyboard = true
	b.params.ReplyMarkup = nil
	return b
}

// WithInlineButtons adds a set of inline buttons.
func (b *Builder) WithInlineButtons(buttons [][]ports.Button) *Builder {
	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: true,
		Buttons:  buttons,
	}
	return b
}

// WithReplyButtons arranges button texts into a reply keyboard grid.
func (b *Builder) WithReplyButtons(buttonTexts []string, columns int) *Builder {
	if columns < 1 {
		columns = 1
	}
	var rows [][]ports.Button
	var row []ports.Button
	for i, text := range buttonTexts {
		row = append(row, ports.Button{Text: text})
		if (i+1)%columns == 0 || i == len(buttonTexts)-1 {
			rows = append(rows, row)
			row = nil
		}
	}

	b.params.RemoveKeyboard = false
	b.params.ReplyMarkup = &ports.ReplyMarkup{
		IsInline: false,
		Buttons:  rows,
	}
	return b
}

func (b *Builder) Build() ports.SendMessageParams {
	return b.params
}

// Escape makes s safe to embed in a MarkdownV2 message.
func Escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

// PropertyLine is the one-line summary used in search results.
func PropertyLine(p domain.Property) string {
	badge := ""
	if p.Verified {
		badge = " ✅"
	}
	return fmt.Sprintf("*%s*%s\n📍 %s · %s", Escape(p.Title), badge, Escape(p.Location), Escape(domain.FormatNaira(p.PriceNGN)))
}

// PropertyCard is the full listing view.
func PropertyCard(d domain.PropertyDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", Escape(d.Title))
	fmt.Fprintf(&b, "📍 %s\n", Escape(d.Location))
	fmt.Fprintf(&b, "💰 %s per year\n", Escape(domain.FormatNaira(d.PriceNGN)))
	fmt.Fprintf(&b, "🏠 %s\n", Escape(string(d.Type)))
	if d.Verified {
		b.WriteString("✅ Verified listing\n")
	} else {
		b.WriteString("⚠️ Not yet verified\n")
	}
	fmt.Fprintf(&b, "🛡 Safety %s\n", Escape(fmt.Sprintf("%.1f/10", d.SafetyScore)))
	if len(d.Amenities) > 0 {
		fmt.Fprintf(&b, "✨ %s\n", Escape(strings.Join(d.Amenities, ", ")))
	}
	if len(d.Reviews) > 0 {
		fmt.Fprintf(&b, "⭐ %s from %d review", Escape(fmt.Sprintf("%.1f", d.AvgRating)), len(d.Reviews))
		if len(d.Reviews) != 1 {
			b.WriteString("s")
		}
		b.WriteString("\n")
	}
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", Escape(d.Description))
	}
	fmt.Fprintf(&b, "\nID: `%s`", Escape(d.ID))
	return b.String()
}

// PropertyButtons gives each listing an inline button that opens its card.
func PropertyButtons(props []domain.Property) [][]ports.Button {
	rows := make([][]ports.Button, 0, len(props))
	for _, p := range props {
		rows = append(rows, []ports.Button{{Text: p.ID + " · " + p.Title, Data: PropertyCallbackPrefix + p.ID}})
	}
	return rows
}

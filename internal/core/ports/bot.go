package ports

import (
	"context"
)

// --- Bot Message Structures ---

// Button represents a single button in a keyboard.
type Button struct {
	Text string
	Data string // For callbacks
	URL  string // For URL buttons
}

// ReplyMarkup represents any kind of keyboard markup.
type ReplyMarkup struct {
	Buttons  [][]Button
	IsInline bool // Differentiates between Inline and Reply keyboards
}

// SendMessageParams holds all possible options for sending a message.
type SendMessageParams struct {
	ChatID         int64
	Text           string
	ParseMode      string // e.g., "MarkdownV2" or "HTML"
	ReplyMarkup    *ReplyMarkup
	RemoveKeyboard bool
}

// SendLocationParams pins a map location in a chat.
type SendLocationParams struct {
	ChatID    int64
	Latitude  float64
	Longitude float64
}

// MenuCommand is one entry of the bot's command menu.
type MenuCommand struct {
	Command     string
	Description string
}

// --- Bot Client Port (Outbound) ---

// BotClientPort defines the interface for *sending* messages.
type BotClientPort interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
	SendLocation(ctx context.Context, params SendLocationParams) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	SetMenuCommands(ctx context.Context, commands []MenuCommand) error
}

// --- Bot Handler Port (Inbound) ---

// BotUpdate represents a simplified, generic update.
type BotUpdate struct {
	MessageID    int
	ChatID       int64
	UserID       int64
	Username     string
	Text         string
	Command      string
	Args         string
	CallbackID   string
	CallbackData *string
}

// CommandHandler defines the "plugin" interface for handling bot commands.
type CommandHandler interface {
	// Command returns the command string (e.g., "start")
	Command() string
	// Description is shown in the bot menu.
	Description() string
	// Handle processes the update.
	Handle(ctx context.Context, update *BotUpdate) error
}

// CallbackHandler defines the interface for handling callback queries.
type CallbackHandler interface {
	// Prefix returns the prefix for the callback (e.g., "prop:")
	Prefix() string
	// Handle processes the callback.
	Handle(ctx context.Context, update *BotUpdate) error
}

// TextHandler receives every plain message that is not a command.
type TextHandler interface {
	Handle(ctx context.Context, update *BotUpdate) error
}

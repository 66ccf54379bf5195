package telegram

import (
	"Bodi/internal/core/ports"
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockCommandHandler struct {
	mock.Mock
}

func (m *MockCommandHandler) Command() string {
	args := m.Called()
	return args.String(0)
}
func (m *MockCommandHandler) Description() string { return "" }
func (m *MockCommandHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	args := m.Called(update)
	return args.Error(0)
}

type MockCallbackHandler struct {
	mock.Mock
}

func (m *MockCallbackHandler) Prefix() string {
	args := m.Called()
	return args.String(0)
}
func (m *MockCallbackHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	args := m.Called(update)
	return args.Error(0)
}

type MockTextHandler struct {
	mock.Mock
}

func (m *MockTextHandler) Handle(ctx context.Context, update *ports.BotUpdate) error {
	args := m.Called(update)
	return args.Error(0)
}

// MockBotClient is a mock for the BotClientPort
type MockBotClient struct {
	mock.Mock
}

func (m *MockBotClient) SendMessage(ctx context.Context, params ports.SendMessageParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) SendLocation(ctx context.Context, params ports.SendLocationParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}
func (m *MockBotClient) AnswerCallback(ctx context.Context, callbackID, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}
func (m *MockBotClient) SetMenuCommands(ctx context.Context, commands []ports.MenuCommand) error {
	args := m.Called(ctx, commands)
	return args.Error(0)
}

func textUpdate(text string, entities ...tgbotapi.MessageEntity) *tgbotapi.Update {
	return &tgbotapi.Update{
		UpdateID: 123,
		Message: &tgbotapi.Message{
			MessageID: 456,
			From:      &tgbotapi.User{ID: 789, UserName: "testuser"},
			Chat:      &tgbotapi.Chat{ID: 1000},
			Text:      text,
			Entities:  entities,
		},
	}
}

// --- Tests ---

func TestRouter_HandleUpdate_Command(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	router := NewRouter(mockBotClient, &nopLogger)

	searchHandler := new(MockCommandHandler)
	searchHandler.On("Command").Return("search")
	searchHandler.On("Handle", mock.MatchedBy(func(u *ports.BotUpdate) bool {
		return u.Command == "search" && u.Args == "Yaba 1000000" && u.ChatID == 1000 && u.Username == "testuser"
	})).Return(nil).Once()

	helpHandler := new(MockCommandHandler)
	helpHandler.On("Command").Return("help")

	router.RegisterCommandHandler(searchHandler)
	router.RegisterCommandHandler(helpHandler)

	router.HandleUpdate(ctx, textUpdate("/search Yaba 1000000", tgbotapi.MessageEntity{Type: "bot_command", Offset: 0, Length: 7}))

	searchHandler.AssertExpectations(t)
	helpHandler.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestRouter_HandleUpdate_UnknownCommand(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	router := NewRouter(mockBotClient, &nopLogger)

	mockBotClient.On("SendMessage", mock.Anything, mock.MatchedBy(func(p ports.SendMessageParams) bool {
		return p.ChatID == 1000 && p.Text != ""
	})).Return(nil).Once()

	router.HandleUpdate(ctx, textUpdate("/teleport", tgbotapi.MessageEntity{Type: "bot_command", Offset: 0, Length: 9}))

	mockBotClient.AssertExpectations(t)
}

func TestRouter_HandleUpdate_Callback(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	router := NewRouter(mockBotClient, &nopLogger)

	propHandler := new(MockCallbackHandler)
	propHandler.On("Prefix").Return("prop:")
	propHandler.On("Handle", mock.MatchedBy(func(u *ports.BotUpdate) bool {
		return u.CallbackID == "cb_id_1" && *u.CallbackData == "prop:LAG-001"
	})).Return(nil).Once()

	langHandler := new(MockCallbackHandler)
	langHandler.On("Prefix").Return("lang:")

	router.RegisterCallbackHandler(propHandler)
	router.RegisterCallbackHandler(langHandler)

	router.HandleUpdate(ctx, &tgbotapi.Update{
		UpdateID: 124,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb_id_1",
			From: &tgbotapi.User{ID: 789, UserName: "testuser"},
			Message: &tgbotapi.Message{
				MessageID: 456,
				Chat:      &tgbotapi.Chat{ID: 1000},
			},
			Data: "prop:LAG-001",
		},
	})

	propHandler.AssertExpectations(t)
	langHandler.AssertNotCalled(t, "Handle", mock.Anything)
}

func TestRouter_HandleUpdate_Text(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	router := NewRouter(mockBotClient, &nopLogger)

	textHandler := new(MockTextHandler)
	textHandler.On("Handle", mock.MatchedBy(func(u *ports.BotUpdate) bool {
		return u.Text == "any 2 bedroom in Yaba?"
	})).Return(nil).Once()
	router.SetTextHandler(textHandler)

	router.HandleUpdate(ctx, textUpdate("any 2 bedroom in Yaba?"))

	textHandler.AssertExpectations(t)
	mockBotClient.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}

func TestRouter_HandleUpdate_UnhandledText(t *testing.T) {
	ctx := context.Background()
	nopLogger := zerolog.Nop()
	mockBotClient := new(MockBotClient)
	router := NewRouter(mockBotClient, &nopLogger)

	mockBotClient.On("SendMessage", mock.Anything, mock.Anything).Return(nil).Once()

	router.HandleUpdate(ctx, textUpdate("hello world"))

	mockBotClient.AssertExpectations(t)
}

func TestParseUpdate(t *testing.T) {
	_, ok := parseUpdate(&tgbotapi.Update{UpdateID: 1})
	assert.False(t, ok)

	_, ok = parseUpdate(&tgbotapi.Update{Message: &tgbotapi.Message{Text: "channel post", Chat: &tgbotapi.Chat{ID: 1}}})
	assert.False(t, ok, "messages without a sender are ignored")

	u, ok := parseUpdate(textUpdate("/property LAG-002 ", tgbotapi.MessageEntity{Type: "bot_command", Offset: 0, Length: 9}))
	require.True(t, ok)
	assert.Equal(t, "property", u.Command)
	assert.Equal(t, "LAG-002", u.Args)
	assert.Equal(t, int64(789), u.UserID)
}

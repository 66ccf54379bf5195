// Package bot holds the Telegram assistant's handler registry. Handler
// packages register their constructors from init().
package bot

import (
	"Bodi/internal/core/ports"
	"Bodi/internal/core/services"
	"Bodi/internal/geo"

	"github.com/rs/zerolog"
)

// Deps are the collaborators every handler constructor receives.
type Deps struct {
	Properties *services.PropertyService
	Assistant  *services.AssistantService
	Places     *geo.KnowledgeBase
	Client     ports.BotClientPort
	Sessions   *Sessions
}

type (
	CommandHandlerConstructor  func(Deps, *zerolog.Logger) ports.CommandHandler
	CallbackHandlerConstructor func(Deps, *zerolog.Logger) ports.CallbackHandler
	TextHandlerConstructor     func(Deps, *zerolog.Logger) ports.TextHandler
)

// Registrar is the router side of registration.
type Registrar interface {
	RegisterCommandHandler(ports.CommandHandler)
	RegisterCallbackHandler(ports.CallbackHandler)
	SetTextHandler(ports.TextHandler)
}

var (
	commandRegistry  []CommandHandlerConstructor
	callbackRegistry []CallbackHandlerConstructor
	textHandler      TextHandlerConstructor
)

// RegisterCommand is called by handlers in their init() function.
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterCallback is called by callback handlers in their init() function.
func RegisterCallback(constructor CallbackHandlerConstructor) {
	callbackRegistry = append(callbackRegistry, constructor)
}

// RegisterText sets the single handler for plain messages.
func RegisterText(constructor TextHandlerConstructor) {
	textHandler = constructor
}

// RegisterAllHandlers builds every registered handler, hands it to the
// router and returns the command menu in registration order.
func RegisterAllHandlers(router Registrar, deps Deps, baseLogger *zerolog.Logger) []ports.MenuCommand {
	log := baseLogger.With().Str("component", "handler_registry").Logger()

	menu := make([]ports.MenuCommand, 0, len(commandRegistry))
	for _, constructor := range commandRegistry {
		handler := constructor(deps, baseLogger)
		router.RegisterCommandHandler(handler)
		menu = append(menu, ports.MenuCommand{Command: handler.Command(), Description: handler.Description()})
	}

	for _, constructor := range callbackRegistry {
		router.RegisterCallbackHandler(constructor(deps, baseLogger))
	}

	if textHandler != nil {
		router.SetTextHandler(textHandler(deps, baseLogger))
		log.Info().Msg("Registered main text handler")
	}
	return menu
}

package ports

import "context"

// Event is a generic wrapper for any event payload
type Event struct {
	Topic string
	Data  any
}

// EventHandler is a function that can handle a specific event
type EventHandler func(ctx context.Context, event Event) error

// EventBus is the in-process pub/sub used to fan domain events out
// to the ledger and the Telegram notifier.
type EventBus interface {
	// Publish sends an event to all subscribers of a topic
	Publish(ctx context.Context, topic string, data any) error

	// Subscribe registers a handler for a specific topic
	Subscribe(topic string, handler EventHandler)

	// Wait blocks until every handler already dispatched has returned.
	Wait()
}

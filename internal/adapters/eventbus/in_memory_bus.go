package eventbus

import (
	"Bodi/internal/core/ports"
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// inMemoryEventBus implements the ports.EventBus interface
type inMemoryEventBus struct {
	log         zerolog.Logger
	subscribers map[string][]ports.EventHandler
	mu          sync.RWMutex

	// pending counts running handlers. Unlike a WaitGroup it may grow
	// while Wait is blocked, so Publish and Wait can overlap freely.
	flightMu sync.Mutex
	idle     *sync.Cond
	pending  int
}

// NewInMemoryEventBus creates a new, empty event bus
func NewInMemoryEventBus(baseLogger *zerolog.Logger) ports.EventBus {
	b := &inMemoryEventBus{
		log:         baseLogger.With().Str("component", "in_memory_bus").Logger(),
		subscribers: make(map[string][]ports.EventHandler),
	}
	b.idle = sync.NewCond(&b.flightMu)
	return b
}

// Publish sends an event to all subscribers of a topic. Handlers run on
// their own goroutines with a fresh context, so a cancelled request does
// not abort the ledger write or the alert it triggered.
func (b *inMemoryEventBus) Publish(ctx context.Context, topic string, data any) error {
	b.mu.RLock()
	handlers := append([]ports.EventHandler(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug().Str("topic", topic).Msg("Published event with no subscribers")
		return nil
	}

	event := ports.Event{
		Topic: topic,
		Data:  data,
	}

	b.flightMu.Lock()
	b.pending += len(handlers)
	b.flightMu.Unlock()
	for _, handler := range handlers {
		go func(h ports.EventHandler) {
			defer b.done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error().Interface("panic", r).Str("topic", topic).Msg("Event handler panicked")
				}
			}()
			if err := h(context.WithoutCancel(ctx), event); err != nil {
				b.log.Error().Err(err).Str("topic", topic).Msg("Event handler failed")
			}
		}(handler)
	}

	b.log.Debug().Str("topic", topic).Int("handlers", len(handlers)).Msg("Event published")
	return nil
}

// Subscribe registers a handler for a specific topic
func (b *inMemoryEventBus) Subscribe(topic string, handler ports.EventHandler) {
	b.mu.Lock() // Lock for writing to the map
	defer b.mu.Unlock()

	b.subscribers[topic] = append(b.subscribers[topic], handler)
	b.log.Info().Str("topic", topic).Msg("New handler subscribed to topic")
}

// Wait blocks until every dispatched handler has returned. Used on shutdown
// and in tests.
func (b *inMemoryEventBus) Wait() {
	b.flightMu.Lock()
	defer b.flightMu.Unlock()
	for b.pending > 0 {
		b.idle.Wait()
	}
}

func (b *inMemoryEventBus) done() {
	b.flightMu.Lock()
	defer b.flightMu.Unlock()
	b.pending--
	if b.pending == 0 {
		b.idle.Broadcast()
	}
}

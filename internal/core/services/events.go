package services

import (
	"Bodi/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

// publish is fire-and-forget: a failed publish is logged, never returned.
func publish(ctx context.Context, bus ports.EventBus, log *zerolog.Logger, topic string, data any) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, topic, data); err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Failed to publish event")
	}
}

package eventbus

import (
	"Bodi/internal/core/ports"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBus_FanOut(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var calls atomic.Int32
	var mu sync.Mutex
	var got []any

	handler := func(ctx context.Context, e ports.Event) error {
		calls.Add(1)
		mu.Lock()
		got = append(got, e.Data)
		mu.Unlock()
		return nil
	}
	bus.Subscribe("escrow:transitioned", handler)
	bus.Subscribe("escrow:transitioned", handler)
	bus.Subscribe("other", handler)

	require.NoError(t, bus.Publish(context.Background(), "escrow:transitioned", "ESC-10001"))
	bus.Wait()

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []any{"ESC-10001", "ESC-10001"}, got)
}

func TestInMemoryBus_NoSubscribers(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	assert.NoError(t, bus.Publish(context.Background(), "nobody:listens", 1))
	bus.Wait()
}

func TestInMemoryBus_HandlerOutlivesPublisherContext(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var sawCancel atomic.Bool
	bus.Subscribe("t", func(ctx context.Context, e ports.Event) error {
		sawCancel.Store(ctx.Err() != nil)
		return errors.New("handler errors are only logged")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, bus.Publish(ctx, "t", nil))
	bus.Wait()

	assert.False(t, sawCancel.Load())
}

func TestInMemoryBus_PanickingHandlerIsContained(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var delivered atomic.Int32
	bus.Subscribe("escrow:transitioned", func(ctx context.Context, ev ports.Event) error {
		panic("boom")
	})
	bus.Subscribe("escrow:transitioned", func(ctx context.Context, ev ports.Event) error {
		delivered.Add(1)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), "escrow:transitioned", "ESC-12345"))
	bus.Wait()
	assert.Equal(t, int32(1), delivered.Load())
}

func TestInMemoryBus_PublishWhileWaiting(t *testing.T) {
	nopLogger := zerolog.Nop()
	bus := NewInMemoryEventBus(&nopLogger)

	var calls atomic.Int32
	bus.Subscribe("review:created", func(ctx context.Context, e ports.Event) error {
		calls.Add(1)
		return nil
	})

	const publishers, perPublisher = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				assert.NoError(t, bus.Publish(context.Background(), "review:created", j))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < perPublisher; j++ {
				bus.Wait()
			}
		}()
	}
	wg.Wait()
	bus.Wait()

	assert.Equal(t, int32(publishers*perPublisher), calls.Load())
}

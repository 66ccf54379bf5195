package services

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// maxIDAttempts is how many random draws are tried at one width before the
// numeric part grows by a digit.
const maxIDAttempts = 32

// IDGenerator issues random prefixed ids such as ESC-48213 and retries
// on collision. Safe for concurrent use.
type IDGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewIDGenerator seeds from the clock when seed is 0.
func NewIDGenerator(seed int64) *IDGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &IDGenerator{rand: rand.New(rand.NewSource(seed))}
}

// Next returns prefix-NNN with at least digits digits that taken rejects.
func (g *IDGenerator) Next(ctx context.Context, prefix string, digits int, taken func(context.Context, string) bool) string {
	for width := digits; ; width++ {
		lo := pow10(width - 1)
		span := pow10(width) - lo
		for i := 0; i < maxIDAttempts; i++ {
			g.mu.Lock()
			n := lo + g.rand.Intn(span)
			g.mu.Unlock()

			id := fmt.Sprintf("%s-%0*d", prefix, width, n)
			if !taken(ctx, id) {
				return id
			}
		}
	}
}

func pow10(n int) int {
	out := 1
	for i := 0; i < n; i++ {
		out *= 10
	}
	return out
}

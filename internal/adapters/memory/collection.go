package memory

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"sync"
)

// collection is an insertion-ordered map guarded by a RWMutex.
// Values go in and come out through clone so callers never share
// slices with the stored copy.
type collection[T any] struct {
	kind  string
	idOf  func(T) string
	clone func(T) T

	mu    sync.RWMutex
	items map[string]T
	order []string
}

var _ ports.Repository[domain.Property] = (*collection[domain.Property])(nil)

func newCollection[T any](kind string, idOf func(T) string, clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{
		kind:  kind,
		idOf:  idOf,
		clone: clone,
		items: make(map[string]T),
	}
}

// seed replaces the whole collection.
func (c *collection[T]) seed(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]T, len(items))
	c.order = c.order[:0]
	for _, it := range items {
		id := c.idOf(it)
		if _, ok := c.items[id]; !ok {
			c.order = append(c.order, id)
		}
		c.items[id] = c.clone(it)
	}
}

func (c *collection[T]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrNotFound)
	}
	return c.clone(v), nil
}

func (c *collection[T]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out, nil
}

func (c *collection[T]) Insert(_ context.Context, entity T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(entity)
	if _, ok := c.items[id]; ok {
		return fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrConflict)
	}
	c.items[id] = c.clone(entity)
	c.order = append(c.order, id)
	return nil
}

func (c *collection[T]) Save(_ context.Context, entity T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(entity)
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = c.clone(entity)
	return nil
}

func (c *collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrNotFound)
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection[T]) Exists(_ context.Context, id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.items[id]
	return ok
}

// Len is used by startup logging.
func (c *collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

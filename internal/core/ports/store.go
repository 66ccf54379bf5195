package ports

import (
	"Bodi/internal/core/domain"
	"context"
)

// Repository is the per-entity contract of the entity store.
// Lookups of a missing id fail with domain.ErrNotFound.
type Repository[T any] interface {
	// Get returns a copy of the entity.
	Get(ctx context.Context, id string) (T, error)

	// List returns every entity in insertion order.
	List(ctx context.Context) ([]T, error)

	// Insert adds a new entity; an existing id fails with domain.ErrConflict.
	Insert(ctx context.Context, entity T) error

	// Save inserts or replaces by id.
	Save(ctx context.Context, entity T) error

	// Delete removes by id.
	Delete(ctx context.Context, id string) error

	// Exists reports whether the id is taken.
	Exists(ctx context.Context, id string) bool
}

type (
	UserRepository            = Repository[domain.User]
	PropertyRepository        = Repository[domain.Property]
	EscrowRepository          = Repository[domain.EscrowTransaction]
	ReviewRepository          = Repository[domain.Review]
	LocationShareRepository   = Repository[domain.LocationShare]
	ServiceProviderRepository = Repository[domain.ServiceProvider]
	MaintenanceRepository     = Repository[domain.MaintenanceRequest]
)

// Store groups the collections of one process-wide entity store.
type Store interface {
	Users() UserRepository
	Properties() PropertyRepository
	Escrows() EscrowRepository
	Reviews() ReviewRepository
	LocationShares() LocationShareRepository
	ServiceProviders() ServiceProviderRepository
	Maintenance() MaintenanceRepository
}

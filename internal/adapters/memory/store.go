package memory

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"slices"

	"github.com/rs/zerolog"
)

// Store is the process-wide entity store. Build one at startup and pass it down.
type Store struct {
	log         zerolog.Logger
	users       *collection[domain.User]
	properties  *collection[domain.Property]
	escrows     *collection[domain.EscrowTransaction]
	reviews     *collection[domain.Review]
	shares      *collection[domain.LocationShare]
	providers   *collection[domain.ServiceProvider]
	maintenance *collection[domain.MaintenanceRequest]
}

var _ ports.Store = (*Store)(nil)

// NewStore creates an empty store.
func NewStore(baseLogger *zerolog.Logger) *Store {
	return &Store{
		log:        baseLogger.With().Str("component", "memory_store").Logger(),
		users:      newCollection("user", func(u domain.User) string { return u.ID }, nil),
		properties: newCollection("property", func(p domain.Property) string { return p.ID }, domain.Property.Clone),
		escrows:    newCollection("escrow transaction", func(e domain.EscrowTransaction) string { return e.ID }, cloneEscrow),
		reviews:    newCollection("review", func(r domain.Review) string { return r.ID }, nil),
		shares:     newCollection("location share", func(s domain.LocationShare) string { return s.ID }, nil),
		providers: newCollection("service provider", func(p domain.ServiceProvider) string { return p.ID }, func(p domain.ServiceProvider) domain.ServiceProvider {
			p.ServiceArea = slices.Clone(p.ServiceArea)
			return p
		}),
		maintenance: newCollection("maintenance request", func(m domain.MaintenanceRequest) string { return m.ID }, nil),
	}
}

func cloneEscrow(e domain.EscrowTransaction) domain.EscrowTransaction {
	if e.CompletedAt != nil {
		t := *e.CompletedAt
		e.CompletedAt = &t
	}
	if e.DisputeReason != nil {
		r := *e.DisputeReason
		e.DisputeReason = &r
	}
	return e
}

func (s *Store) Users() ports.UserRepository                       { return s.users }
func (s *Store) Properties() ports.PropertyRepository              { return s.properties }
func (s *Store) Escrows() ports.EscrowRepository                   { return s.escrows }
func (s *Store) Reviews() ports.ReviewRepository                   { return s.reviews }
func (s *Store) LocationShares() ports.LocationShareRepository     { return s.shares }
func (s *Store) ServiceProviders() ports.ServiceProviderRepository { return s.providers }
func (s *Store) Maintenance() ports.MaintenanceRepository          { return s.maintenance }

// Seed bulk-loads the collections. Existing contents are replaced.
func (s *Store) Seed(data SeedData) {
	s.users.seed(data.Users)
	s.properties.seed(data.Properties)
	s.providers.seed(data.ServiceProviders)
	s.reviews.seed(data.Reviews)

	s.log.Info().
		Int("users", s.users.Len()).
		Int("properties", s.properties.Len()).
		Int("service_providers", s.providers.Len()).
		Int("reviews", s.reviews.Len()).
		Msg("Entity store seeded")
}

package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// PropertyFilter is a conjunction of optional predicates. Zero values
// mean "no constraint" except MaxPrice, which is unset only when nil.
type PropertyFilter struct {
	Location     string
	MaxPrice     *float64
	VerifiedOnly bool
	OwnerID      string
}

// Match reports whether p satisfies every set predicate.
func (f PropertyFilter) Match(p domain.Property) bool {
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.MaxPrice != nil && p.PriceNGN > *f.MaxPrice {
		return false
	}
	if f.VerifiedOnly && !p.Verified {
		return false
	}
	if f.OwnerID != "" && p.OwnerID != f.OwnerID {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// PropertyService is the listing side of the query surface.
type PropertyService struct {
	log   zerolog.Logger
	store ports.Store
	bus   ports.EventBus
}

// NewPropertyService wires the listing operations to a store.
func NewPropertyService(store ports.Store, bus ports.EventBus, baseLogger *zerolog.Logger) *PropertyService {
	return &PropertyService{
		log:   baseLogger.With().Str("component", "property_service").Logger(),
		store: store,
		bus:   bus,
	}
}

// List returns the listings matching f in store order.
func (s *PropertyService) List(ctx context.Context, f PropertyFilter) ([]domain.Property, error) {
	all, err := s.store.Properties().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Property, 0, len(all))
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get returns one listing.
func (s *PropertyService) Get(ctx context.Context, id string) (domain.Property, error) {
	return s.store.Properties().Get(ctx, id)
}

// Detail returns a listing with its reviews and their mean rating.
func (s *PropertyService) Detail(ctx context.Context, id string) (domain.PropertyDetail, error) {
	p, err := s.store.Properties().Get(ctx, id)
	if err != nil {
		return domain.PropertyDetail{}, err
	}
	reviews, err := reviewsFor(ctx, s.store, id)
	if err != nil {
		return domain.PropertyDetail{}, err
	}
	return domain.PropertyDetail{
		Property:  p,
		Reviews:   reviews,
		AvgRating: domain.AverageRating(reviews),
	}, nil
}

// Create stores a landlord's listing exactly as submitted.
func (s *PropertyService) Create(ctx context.Context, p domain.Property) (domain.Property, error) {
	if err := p.Validate(); err != nil {
		return domain.Property{}, err
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if err := s.store.Properties().Insert(ctx, p); err != nil {
		return domain.Property{}, err
	}

	s.log.Info().Str("property_id", p.ID).Str("owner_id", p.OwnerID).Msg("Property listed")
	publish(ctx, s.bus, &s.log, domain.TopicPropertyListed, p)
	return p, nil
}

// Update applies an explicit patch. An empty patch is rejected.
func (s *PropertyService) Update(ctx context.Context, id string, patch domain.PropertyPatch) (domain.Property, error) {
	if patch.Empty() {
		return domain.Property{}, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}
	current, err := s.store.Properties().Get(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	updated, err := patch.Apply(current)
	if err != nil {
		return domain.Property{}, err
	}
	if err := s.store.Properties().Save(ctx, updated); err != nil {
		return domain.Property{}, err
	}

	s.log.Info().Str("property_id", id).Msg("Property updated")
	publish(ctx, s.bus, &s.log, domain.TopicPropertyUpdated, updated)
	return updated, nil
}

// Delete removes a listing. Reviews and escrows that reference it are kept.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	p, err := s.store.Properties().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Properties().Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("property_id", id).Msg("Property removed")
	publish(ctx, s.bus, &s.log, domain.TopicPropertyRemoved, p)
	return nil
}

func reviewsFor(ctx context.Context, store ports.Store, propertyID string) ([]domain.Review, error) {
	all, err := store.Reviews().List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Review{}
	for _, r := range all {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

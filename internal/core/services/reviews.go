package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ReviewCreate struct {
	PropertyID string `json:"property_id"`
	UserID     string `json:"user_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type ReviewService struct {
	log   zerolog.Logger
	store ports.Store
	bus   ports.EventBus
	ids   *IDGenerator
	now   func() time.Time
}

func NewReviewService(store ports.Store, bus ports.EventBus, ids *IDGenerator, baseLogger *zerolog.Logger) *ReviewService {
	return &ReviewService{
		log:   baseLogger.With().Str("component", "review_service").Logger(),
		store: store,
		bus:   bus,
		ids:   ids,
		now:   time.Now,
	}
}

// Create posts a review against an existing property.
func (s *ReviewService) Create(ctx context.Context, req ReviewCreate) (domain.Review, error) {
	if err := domain.ValidateRating(req.Rating); err != nil {
		return domain.Review{}, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return domain.Review{}, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if !s.store.Properties().Exists(ctx, req.PropertyID) {
		return domain.Review{}, fmt.Errorf("property %q: %w", req.PropertyID, domain.ErrNotFound)
	}

	repo := s.store.Reviews()
	review := domain.Review{
		ID:         s.ids.Next(ctx, "REV", 3, repo.Exists),
		PropertyID: req.PropertyID,
		ReviewerID: req.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  s.now().UTC(),
	}
	if err := repo.Insert(ctx, review); err != nil {
		return domain.Review{}, err
	}

	s.log.Info().Str("review_id", review.ID).Str("property_id", review.PropertyID).Int("rating", review.Rating).Msg("Review posted")
	publish(ctx, s.bus, &s.log, domain.TopicReviewPosted, review)
	return review, nil
}

// ForProperty summarises the reviews on one property. An unknown property
// has an empty summary.
func (s *ReviewService) ForProperty(ctx context.Context, propertyID string) (domain.ReviewSummary, error) {
	reviews, err := reviewsFor(ctx, s.store, propertyID)
	if err != nil {
		return domain.ReviewSummary{}, err
	}
	return domain.ReviewSummary{
		Reviews:       reviews,
		AverageRating: domain.AverageRating(reviews),
		TotalReviews:  len(reviews),
	}, nil
}

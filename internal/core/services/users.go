package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

type UserService struct {
	log   zerolog.Logger
	store ports.Store
	bus   ports.EventBus
	now   func() time.Time
}

func NewUserService(store ports.Store, bus ports.EventBus, baseLogger *zerolog.Logger) *UserService {
	return &UserService{
		log:   baseLogger.With().Str("component", "user_service").Logger(),
		store: store,
		bus:   bus,
		now:   time.Now,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.store.Users().Get(ctx, id)
}

// Verify sets the user's level and pays the trust reward. A user that does
// not exist yet is created unverified first.
func (s *UserService) Verify(ctx context.Context, id string, level string) (domain.User, error) {
	lvl, err := domain.ParseVerificationLevel(level)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.store.Users().Get(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = domain.User{
			ID:                id,
			VerificationLevel: domain.VerificationUnverified,
			CreatedAt:         s.now().UTC(),
		}
		s.log.Info().Str("user_id", id).Msg("Creating user on first verification")
	case err != nil:
		return domain.User{}, err
	}

	previous := user.VerificationLevel
	user.Verify(lvl)
	if err := s.store.Users().Save(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.log.Info().
		Str("user_id", id).
		Str("level", string(lvl)).
		Int("trust_score", user.TrustScore).
		Msg("User verified")
	publish(ctx, s.bus, &s.log, domain.TopicUserVerified, domain.UserVerified{User: user, Previous: previous})
	return user, nil
}

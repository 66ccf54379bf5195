package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type LocationShareCreate struct {
	UserID           string  `json:"user_id"`
	PropertyID       string  `json:"property_id"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	EmergencyContact string  `json:"emergency_contact"`
}

func (c LocationShareCreate) validate() error {
	var problems []string
	if strings.TrimSpace(c.UserID) == "" {
		problems = append(problems, "user_id is required")
	}
	if strings.TrimSpace(c.EmergencyContact) == "" {
		problems = append(problems, "emergency_contact is required")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		problems = append(problems, "latitude must be within [-90,90]")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		problems = append(problems, "longitude must be within [-180,180]")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

type EmergencyTrigger struct {
	UserID          string `json:"user_id"`
	LocationShareID string `json:"location_share_id"`
	Message         string `json:"message"`
}

// SafetyService records location shares for viewings and raises emergency
// alerts. Delivery to a human is done by whoever subscribes to
// domain.TopicEmergencyTriggered.
type SafetyService struct {
	log   zerolog.Logger
	store ports.Store
	bus   ports.EventBus
	ids   *IDGenerator
	now   func() time.Time
}

func NewSafetyService(store ports.Store, bus ports.EventBus, ids *IDGenerator, baseLogger *zerolog.Logger) *SafetyService {
	return &SafetyService{
		log:   baseLogger.With().Str("component", "safety_service").Logger(),
		store: store,
		bus:   bus,
		ids:   ids,
		now:   time.Now,
	}
}

func (s *SafetyService) StartShare(ctx context.Context, req LocationShareCreate) (domain.LocationShare, error) {
	if err := req.validate(); err != nil {
		return domain.LocationShare{}, err
	}

	repo := s.store.LocationShares()
	share := domain.LocationShare{
		ID:               s.ids.Next(ctx, "LOC", 4, repo.Exists),
		UserID:           req.UserID,
		PropertyID:       req.PropertyID,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		EmergencyContact: req.EmergencyContact,
		Active:           true,
		CreatedAt:        s.now().UTC(),
	}
	if err := repo.Insert(ctx, share); err != nil {
		return domain.LocationShare{}, err
	}

	s.log.Info().Str("share_id", share.ID).Str("user_id", share.UserID).Str("property_id", share.PropertyID).Msg("Location sharing started")
	publish(ctx, s.bus, &s.log, domain.TopicLocationShared, share)
	return share, nil
}

func (s *SafetyService) GetShare(ctx context.Context, id string) (domain.LocationShare, error) {
	return s.store.LocationShares().Get(ctx, id)
}

// StopShare deactivates a share. Stopping an inactive share is a no-op.
func (s *SafetyService) StopShare(ctx context.Context, id string) (domain.LocationShare, error) {
	share, err := s.store.LocationShares().Get(ctx, id)
	if err != nil {
		return domain.LocationShare{}, err
	}
	if !share.Active {
		return share, nil
	}
	share.Active = false
	if err := s.store.LocationShares().Save(ctx, share); err != nil {
		return domain.LocationShare{}, err
	}

	s.log.Info().Str("share_id", id).Msg("Location sharing stopped")
	publish(ctx, s.bus, &s.log, domain.TopicLocationShareEnded, share)
	return share, nil
}

// TriggerEmergency raises an alert tied to the last known position of a
// location share. The share may already be inactive.
func (s *SafetyService) TriggerEmergency(ctx context.Context, req EmergencyTrigger) (domain.EmergencyAlert, error) {
	share, err := s.store.LocationShares().Get(ctx, req.LocationShareID)
	if err != nil {
		return domain.EmergencyAlert{}, err
	}
	userID := req.UserID
	if userID == "" {
		userID = share.UserID
	}

	alert := domain.EmergencyAlert{
		ID:               uuid.NewString(),
		UserID:           userID,
		LocationShareID:  share.ID,
		PropertyID:       share.PropertyID,
		Latitude:         share.Latitude,
		Longitude:        share.Longitude,
		EmergencyContact: share.EmergencyContact,
		Message:          req.Message,
		TriggeredAt:      s.now().UTC(),
	}

	s.log.Warn().
		Str("alert_id", alert.ID).
		Str("share_id", share.ID).
		Str("user_id", userID).
		Msg("Emergency alert triggered")
	publish(ctx, s.bus, &s.log, domain.TopicEmergencyTriggered, alert)
	return alert, nil
}

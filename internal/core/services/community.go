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

// ProviderFilter narrows the service directory. ServiceType is an exact
// match, Area a case-insensitive substring of any covered area.
type ProviderFilter struct {
	ServiceType string
	Area        string
}

func (f ProviderFilter) Match(p domain.ServiceProvider) bool {
	if f.ServiceType != "" && p.ServiceType != f.ServiceType {
		return false
	}
	if f.Area == "" {
		return true
	}
	for _, a := range p.ServiceArea {
		if containsFold(a, f.Area) {
			return true
		}
	}
	return false
}

type MaintenanceCreate struct {
	PropertyID  string `json:"property_id"`
	TenantID    string `json:"tenant_id"`
	Description string `json:"description"`
}

type CommunityService struct {
	log   zerolog.Logger
	store ports.Store
	bus   ports.EventBus
	ids   *IDGenerator
	now   func() time.Time
}

func NewCommunityService(store ports.Store, bus ports.EventBus, ids *IDGenerator, baseLogger *zerolog.Logger) *CommunityService {
	return &CommunityService{
		log:   baseLogger.With().Str("component", "community_service").Logger(),
		store: store,
		bus:   bus,
		ids:   ids,
		now:   time.Now,
	}
}

func (s *CommunityService) Providers(ctx context.Context, f ProviderFilter) ([]domain.ServiceProvider, error) {
	all, err := s.store.ServiceProviders().List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.ServiceProvider{}
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// RequestMaintenance files a pending request. The property's landlord is
// notified through domain.TopicMaintenanceRequested.
func (s *CommunityService) RequestMaintenance(ctx context.Context, req MaintenanceCreate) (domain.MaintenanceRequest, error) {
	if strings.TrimSpace(req.Description) == "" {
		return domain.MaintenanceRequest{}, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.TenantID) == "" {
		return domain.MaintenanceRequest{}, fmt.Errorf("%w: tenant_id is required", domain.ErrValidation)
	}

	repo := s.store.Maintenance()
	mr := domain.MaintenanceRequest{
		ID:          s.ids.Next(ctx, "MAINT", 3, repo.Exists),
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		Description: req.Description,
		Status:      domain.MaintenancePending,
		CreatedAt:   s.now().UTC(),
	}
	if err := repo.Insert(ctx, mr); err != nil {
		return domain.MaintenanceRequest{}, err
	}

	s.log.Info().Str("request_id", mr.ID).Str("property_id", mr.PropertyID).Msg("Maintenance requested")
	publish(ctx, s.bus, &s.log, domain.TopicMaintenanceRequested, mr)
	return mr, nil
}

package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LandlordService is the owner-facing dashboard. Escrows and maintenance
// requests belong to a landlord through the properties they currently own.
type LandlordService struct {
	log    zerolog.Logger
	store  ports.Store
	images ports.ImageStore
}

// NewLandlordService accepts a nil image store; uploads then fail with
// domain.ErrUnavailable.
func NewLandlordService(store ports.Store, images ports.ImageStore, baseLogger *zerolog.Logger) *LandlordService {
	return &LandlordService{
		log:    baseLogger.With().Str("component", "landlord_service").Logger(),
		store:  store,
		images: images,
	}
}

func (s *LandlordService) Properties(ctx context.Context, ownerID string) ([]domain.Property, error) {
	all, err := s.store.Properties().List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Property{}
	for _, p := range all {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *LandlordService) owned(ctx context.Context, ownerID string) (map[string]struct{}, error) {
	props, err := s.Properties(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(props))
	for _, p := range props {
		ids[p.ID] = struct{}{}
	}
	return ids, nil
}

func (s *LandlordService) Escrows(ctx context.Context, ownerID string) ([]domain.EscrowTransaction, error) {
	ids, err := s.owned(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	all, err := s.store.Escrows().List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.EscrowTransaction{}
	for _, e := range all {
		if _, ok := ids[e.PropertyID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *LandlordService) Maintenance(ctx context.Context, ownerID string) ([]domain.MaintenanceRequest, error) {
	ids, err := s.owned(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	all, err := s.store.Maintenance().List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.MaintenanceRequest{}
	for _, m := range all {
		if _, ok := ids[m.PropertyID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *LandlordService) Analytics(ctx context.Context, ownerID string) (domain.LandlordAnalytics, error) {
	props, err := s.Properties(ctx, ownerID)
	if err != nil {
		return domain.LandlordAnalytics{}, err
	}
	escrows, err := s.Escrows(ctx, ownerID)
	if err != nil {
		return domain.LandlordAnalytics{}, err
	}
	return domain.ComputeLandlordAnalytics(props, escrows), nil
}

// ImageUploadRequest names the file a landlord wants to attach to a listing.
type ImageUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// RequestImageUpload presigns an upload and appends the resulting object URL
// to the listing's image_urls.
func (s *LandlordService) RequestImageUpload(ctx context.Context, propertyID string, req ImageUploadRequest) (ports.PresignedUpload, error) {
	if s.images == nil {
		return ports.PresignedUpload{}, fmt.Errorf("image uploads: %w", domain.ErrUnavailable)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return ports.PresignedUpload{}, fmt.Errorf("%w: content_type must be an image type", domain.ErrValidation)
	}
	property, err := s.store.Properties().Get(ctx, propertyID)
	if err != nil {
		return ports.PresignedUpload{}, err
	}

	key := fmt.Sprintf("properties/%s/%s%s", property.ID, uuid.NewString(), strings.ToLower(path.Ext(req.Filename)))
	upload, err := s.images.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		s.log.Error().Err(err).Str("property_id", propertyID).Msg("Failed to presign image upload")
		return ports.PresignedUpload{}, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}

	property.ImageURLs = append(property.ImageURLs, upload.ObjectURL)
	if err := s.store.Properties().Save(ctx, property); err != nil {
		return ports.PresignedUpload{}, err
	}

	s.log.Info().Str("property_id", propertyID).Str("key", key).Msg("Image upload presigned")
	return upload, nil
}

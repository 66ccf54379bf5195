package services

import (
	"Bodi/internal/core/domain"
	"Bodi/internal/core/ports"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLandlordService_Dashboard(t *testing.T) {
	nopLogger := zerolog.Nop()
	store := newFixtureStore()
	ctx := context.Background()

	escrows := NewEscrowService(store, nil, NewIDGenerator(4), &nopLogger)
	community := NewCommunityService(store, nil, NewIDGenerator(4), &nopLogger)
	svc := NewLandlordService(store, nil, &nopLogger)

	released, err := escrows.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-001", TenantID: "USR-002", AmountNGN: 800000})
	require.NoError(t, err)
	_, err = escrows.Release(ctx, released.ID)
	require.NoError(t, err)

	deposited, err := escrows.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-003", TenantID: "USR-002", AmountNGN: 450000})
	require.NoError(t, err)
	_, err = escrows.Deposit(ctx, deposited.ID)
	require.NoError(t, err)

	_, err = escrows.Initiate(ctx, EscrowInitiate{PropertyID: "ABJ-002", TenantID: "USR-002", AmountNGN: 1200000})
	require.NoError(t, err)
	// Someone else's property.
	_, err = escrows.Initiate(ctx, EscrowInitiate{PropertyID: "LAG-002", TenantID: "USR-001", AmountNGN: 4500000})
	require.NoError(t, err)

	_, err = community.RequestMaintenance(ctx, MaintenanceCreate{PropertyID: "LAG-003", TenantID: "USR-002", Description: "Broken window"})
	require.NoError(t, err)
	_, err = community.RequestMaintenance(ctx, MaintenanceCreate{PropertyID: "LAG-002", TenantID: "USR-001", Description: "Gate motor"})
	require.NoError(t, err)

	props, err := svc.Properties(ctx, "USR-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"LAG-001", "LAG-003", "ABJ-002"}, propertyIDs(props))

	txs, err := svc.Escrows(ctx, "USR-001")
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	reqs, err := svc.Maintenance(ctx, "USR-001")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "LAG-003", reqs[0].PropertyID)

	stats, err := svc.Analytics(ctx, "USR-001")
	require.NoError(t, err)
	assert.Equal(t, domain.LandlordAnalytics{
		TotalProperties:    3,
		VerifiedProperties: 1,
		TotalRevenue:       800000,
		PendingRevenue:     450000,
		ActiveEscrows:      2,
		AverageSafetyScore: 7.7,
	}, stats)

	t.Run("unknown landlord", func(t *testing.T) {
		stats, err := svc.Analytics(ctx, "USR-404")
		require.NoError(t, err)
		assert.Equal(t, domain.LandlordAnalytics{}, stats)
	})
}

func TestLandlordService_RequestImageUpload(t *testing.T) {
	nopLogger := zerolog.Nop()
	ctx := context.Background()

	t.Run("appends the object url", func(t *testing.T) {
		store := newFixtureStore()
		images := new(MockImageStore)
		images.On("PresignUpload", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "properties/LAG-001/") && strings.HasSuffix(key, ".jpg")
		}), "image/jpeg").Return(ports.PresignedUpload{
			URL:       "https://bucket.example/upload?sig=1",
			Method:    "PUT",
			ObjectURL: "https://bucket.example/properties/LAG-001/a.jpg",
		}, nil)

		svc := NewLandlordService(store, images, &nopLogger)
		up, err := svc.RequestImageUpload(ctx, "LAG-001", ImageUploadRequest{Filename: "front.JPG", ContentType: "image/jpeg"})
		require.NoError(t, err)
		assert.Equal(t, "PUT", up.Method)

		p, err := store.Properties().Get(ctx, "LAG-001")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://bucket.example/properties/LAG-001/a.jpg"}, p.ImageURLs)
		images.AssertExpectations(t)
	})

	t.Run("storage not configured", func(t *testing.T) {
		svc := NewLandlordService(newFixtureStore(), nil, &nopLogger)
		_, err := svc.RequestImageUpload(ctx, "LAG-001", ImageUploadRequest{Filename: "a.png", ContentType: "image/png"})
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("not an image", func(t *testing.T) {
		svc := NewLandlordService(newFixtureStore(), new(MockImageStore), &nopLogger)
		_, err := svc.RequestImageUpload(ctx, "LAG-001", ImageUploadRequest{Filename: "a.pdf", ContentType: "application/pdf"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("presign failure", func(t *testing.T) {
		images := new(MockImageStore)
		images.On("PresignUpload", mock.Anything, mock.Anything, "image/png").Return(ports.PresignedUpload{}, errors.New("no credentials"))
		svc := NewLandlordService(newFixtureStore(), images, &nopLogger)
		_, err := svc.RequestImageUpload(ctx, "LAG-001", ImageUploadRequest{Filename: "a.png", ContentType: "image/png"})
		assert.ErrorIs(t, err, domain.ErrExternalService)
	})
}

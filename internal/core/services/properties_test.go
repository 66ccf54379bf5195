package services

import (
	"Bodi/internal/core/domain"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPropertyService() (*PropertyService, *recordingBus) {
	nopLogger := zerolog.Nop()
	bus := &recordingBus{}
	return NewPropertyService(newFixtureStore(), bus, &nopLogger), bus
}

func propertyIDs(props []domain.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func TestPropertyService_List(t *testing.T) {
	svc, _ := newPropertyService()
	price := func(v float64) *float64 { return &v }

	testCases := []struct {
		name   string
		filter PropertyFilter
		want   []string
	}{
		{"no filter keeps store order", PropertyFilter{}, []string{"LAG-001", "LAG-002", "LAG-003", "ABJ-001", "ABJ-002"}},
		{"location is a case-insensitive substring", PropertyFilter{Location: "lagos"}, []string{"LAG-001", "LAG-002", "LAG-003"}},
		{"max price is inclusive", PropertyFilter{MaxPrice: price(800000)}, []string{"LAG-001", "LAG-003"}},
		{"verified only", PropertyFilter{VerifiedOnly: true}, []string{"LAG-001", "LAG-002", "ABJ-001"}},
		{"predicates are conjunctive", PropertyFilter{Location: "Abuja", MaxPrice: price(1500000), VerifiedOnly: true}, []string{}},
		{"owner", PropertyFilter{OwnerID: "USR-002"}, []string{"LAG-002", "ABJ-001"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, propertyIDs(got))
		})
	}
}

func TestPropertyService_Detail(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	detail, err := svc.Detail(ctx, "LAG-001")
	require.NoError(t, err)
	assert.Equal(t, "LAG-001", detail.ID)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, 5.0, detail.AvgRating)

	detail, err = svc.Detail(ctx, "LAG-002")
	require.NoError(t, err)
	assert.Empty(t, detail.Reviews)
	assert.Zero(t, detail.AvgRating)

	_, err = svc.Detail(ctx, "NOPE-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyService_Create(t *testing.T) {
	svc, bus := newPropertyService()
	ctx := context.Background()

	p := domain.Property{ID: "IBD-900", Title: "New Flat", Location: "Bodija, Ibadan", PriceNGN: 500000, Type: domain.PropertyFlat, SafetyScore: 7, OwnerID: "USR-009"}
	created, err := svc.Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []string{}, created.ImageURLs)
	assert.Equal(t, []string{domain.TopicPropertyListed}, bus.topics())

	_, err = svc.Create(ctx, p)
	assert.ErrorIs(t, err, domain.ErrConflict)

	p.ID = "IBD-901"
	p.Type = "castle"
	_, err = svc.Create(ctx, p)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPropertyService_CreateThenGet(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	nb := "IBD-BODIJA"
	p := domain.Property{
		ID:             "IBD-902",
		Title:          "Self-contain near UI",
		Description:    "Quiet street, prepaid meter.",
		Location:       "Bodija, Ibadan",
		PriceNGN:       350000,
		Type:           domain.PropertyFlat,
		Verified:       true,
		SafetyScore:    7.5,
		OwnerID:        "USR-009",
		ImageURLs:      []string{},
		Amenities:      []string{},
		NeighborhoodID: &nb,
	}
	created, err := svc.Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, p, created)

	got, err := svc.Get(ctx, "IBD-902")
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, []string{}, got.ImageURLs)
	assert.Equal(t, []string{}, got.Amenities)
}

func TestPropertyService_ListIsIdempotent(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.Property{ID: "IBD-903", Title: "Bare flat", Location: "Ibadan", PriceNGN: 200000, Type: domain.PropertyFlat, OwnerID: "USR-009"})
	require.NoError(t, err)

	first, err := svc.List(ctx, PropertyFilter{})
	require.NoError(t, err)
	second, err := svc.List(ctx, PropertyFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPropertyService_Update(t *testing.T) {
	svc, bus := newPropertyService()
	ctx := context.Background()

	price := 900000.0
	title := "Refurbished 2-Bedroom"
	updated, err := svc.Update(ctx, "LAG-001", domain.PropertyPatch{PriceNGN: &price, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, 900000.0, updated.PriceNGN)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "USR-001", updated.OwnerID)

	stored, err := svc.Get(ctx, "LAG-001")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
	assert.Equal(t, domain.TopicPropertyUpdated, bus.last().Topic)

	t.Run("empty patch", func(t *testing.T) {
		_, err := svc.Update(ctx, "LAG-001", domain.PropertyPatch{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid value leaves the listing untouched", func(t *testing.T) {
		score := 11.0
		_, err := svc.Update(ctx, "LAG-001", domain.PropertyPatch{SafetyScore: &score})
		assert.ErrorIs(t, err, domain.ErrValidation)

		stored, err := svc.Get(ctx, "LAG-001")
		require.NoError(t, err)
		assert.Equal(t, 8.5, stored.SafetyScore)
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := svc.Update(ctx, "NOPE-1", domain.PropertyPatch{PriceNGN: &price})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPropertyService_Delete(t *testing.T) {
	svc, bus := newPropertyService()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "LAG-003"))
	_, err := svc.Get(ctx, "LAG-003")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.TopicPropertyRemoved, bus.last().Topic)

	assert.ErrorIs(t, svc.Delete(ctx, "LAG-003"), domain.ErrNotFound)
}

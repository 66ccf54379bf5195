package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadKB(t *testing.T) *KnowledgeBase {
	t.Helper()
	kb, err := Load()
	require.NoError(t, err)
	return kb
}

func TestLoad_EmbeddedData(t *testing.T) {
	kb := loadKB(t)

	assert.Equal(t, []string{"Lagos", "Abuja", "Ibadan", "Port Harcourt"}, kb.Cities())
	assert.Len(t, kb.Neighborhoods("Lagos"), 10)
	assert.Len(t, kb.Neighborhoods("Abuja"), 8)
	assert.Nil(t, kb.Neighborhoods("Kano"))

	info, ok := kb.NeighborhoodInfo("Gbagada", "Lagos")
	require.True(t, ok)
	assert.Equal(t, []string{"Gbagada Phase 1 & 2"}, info.Landmarks)
}

func TestExtractContext(t *testing.T) {
	kb := loadKB(t)

	testCases := []struct {
		name          string
		query         string
		cities        []string
		neighborhoods []string
		proximity     []string
		preferences   []string
	}{
		{
			name:          "alias for a university",
			query:         "affordable studio near UNILAG",
			cities:        []string{},
			neighborhoods: []string{"Yaba"},
			proximity:     []string{"near"},
			preferences:   []string{"budget-friendly"},
		},
		{
			name:          "city and neighborhood",
			query:         "Luxury duplex in Lekki, Lagos",
			cities:        []string{"Lagos"},
			neighborhoods: []string{"Lekki"},
			proximity:     []string{},
			preferences:   []string{"upscale"},
		},
		{
			name:          "alias rewrite",
			query:         "flat close to the Airport",
			cities:        []string{},
			neighborhoods: []string{"Ikeja"},
			proximity:     []string{"close to"},
			preferences:   []string{},
		},
		{
			name:          "deduplicated preferences",
			query:         "cheap and affordable gated secure home in Abuja",
			cities:        []string{"Abuja"},
			neighborhoods: []string{},
			proximity:     []string{},
			preferences:   []string{"budget-friendly", "gated/secure"},
		},
		{
			name:          "nothing recognised",
			query:         "somewhere nice",
			cities:        []string{},
			neighborhoods: []string{},
			proximity:     []string{},
			preferences:   []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := kb.ExtractContext(tc.query)
			assert.Equal(t, tc.cities, got.Cities)
			assert.Equal(t, tc.neighborhoods, got.NeighborhoodNames())
			assert.Equal(t, tc.proximity, got.ProximityHints)
			assert.Equal(t, tc.preferences, got.Preferences)
		})
	}
}

func TestExtractContext_NeighborhoodDetailsAndLandmarks(t *testing.T) {
	kb := loadKB(t)

	got := kb.ExtractContext("student room near Yaba")
	require.Len(t, got.Neighborhoods, 1)
	assert.Equal(t, "Lagos", got.Neighborhoods[0].City)
	assert.Equal(t, "Mainland", got.Neighborhoods[0].Details.Zone)
	assert.Contains(t, got.Landmarks, "University of Lagos")
	assert.Contains(t, got.Preferences, "student-friendly")
}

func TestExtractContext_ShortAliasMatchesInsideWords(t *testing.T) {
	kb := loadKB(t)

	// "vi" is an alias, so "vicinity" is rewritten before proximity matching.
	got := kb.ExtractContext("in the vicinity of the stadium")
	assert.Contains(t, got.NeighborhoodNames(), "Victoria Island")
	assert.NotContains(t, got.ProximityHints, "vicinity of")
}

func TestNearbyNeighborhoods(t *testing.T) {
	kb := loadKB(t)

	assert.Equal(t, []string{"Surulere", "Ebute Metta", "Akoka"}, kb.NearbyNeighborhoods("Yaba", "Lagos"))
	assert.Equal(t, []string{}, kb.NearbyNeighborhoods("Yaba", "Abuja"))
	assert.Equal(t, []string{}, kb.NearbyNeighborhoods("Nowhere", "Lagos"))
}

func TestNeighborhoodInfo_UnknownKeys(t *testing.T) {
	kb := loadKB(t)

	info, ok := kb.NeighborhoodInfo("Nowhere", "Lagos")
	assert.False(t, ok)
	assert.Equal(t, Neighborhood{}, info)

	_, ok = kb.NeighborhoodInfo("Yaba", "Atlantis")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("cities: []"))
	assert.Error(t, err)

	_, err = Parse([]byte("cities: [unterminated"))
	assert.Error(t, err)
}

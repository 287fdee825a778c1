package station

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/tidecast/internal/models"
)

func testStations() []models.Station {
	return []models.Station{
		{ID: "ES-VIG", Name: "Vigo", Latitude: 42.2406, Longitude: -8.7245},
		{ID: "ES-COR", Name: "A Coruña", Latitude: 43.3623, Longitude: -8.3983},
		{ID: "ES-PMI", Name: "Palma de Mallorca", Latitude: 39.5532, Longitude: 2.6382},
		{ID: "GB-DOV", Name: "Dover", Latitude: 51.1144, Longitude: 1.3225},
	}
}

func TestResolveExactName(t *testing.T) {
	r := NewResolver(testStations(), 0)

	tests := []struct {
		name   string
		hint   string
		wantID string
	}{
		{name: "plain", hint: "Vigo", wantID: "ES-VIG"},
		{name: "case insensitive", hint: "vigo", wantID: "ES-VIG"},
		{name: "diacritic insensitive", hint: "a coruna", wantID: "ES-COR"},
		{name: "diacritics both sides", hint: "A Coruña", wantID: "ES-COR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := r.Resolve(0, 0, tt.hint)
			require.NotNil(t, match)
			assert.Equal(t, tt.wantID, match.Station.ID)
			assert.Equal(t, models.MatchNameExact, match.Kind)
		})
	}
}

func TestResolveSubstring(t *testing.T) {
	r := NewResolver(testStations(), 0)

	// Hint contained in station name.
	match := r.Resolve(0, 0, "palma")
	require.NotNil(t, match)
	assert.Equal(t, "ES-PMI", match.Station.ID)
	assert.Equal(t, models.MatchNameSubstring, match.Kind)

	// Station name contained in hint.
	match = r.Resolve(0, 0, "Port of Dover, Kent")
	require.NotNil(t, match)
	assert.Equal(t, "GB-DOV", match.Station.ID)
	assert.Equal(t, models.MatchNameSubstring, match.Kind)
}

func TestResolveNearestFallback(t *testing.T) {
	r := NewResolver(testStations(), 0)

	// A point exactly at a cataloged station resolves to it with
	// distance 0.
	match := r.Resolve(42.2406, -8.7245, "nowhere that matches")
	require.NotNil(t, match)
	assert.Equal(t, "ES-VIG", match.Station.ID)
	assert.Equal(t, models.MatchNearest, match.Kind)
	assert.InDelta(t, 0, match.DistanceKM, 1e-6)

	// No hint at all goes straight to distance.
	match = r.Resolve(51.0, 1.2, "")
	require.NotNil(t, match)
	assert.Equal(t, "GB-DOV", match.Station.ID)
	assert.Equal(t, models.MatchNearest, match.Kind)
	assert.Greater(t, match.DistanceKM, 0.0)
}

func TestResolveMaxFallbackDistance(t *testing.T) {
	r := NewResolver(testStations(), 100)

	// Reykjavik is far from every cataloged station; the resolver must
	// reject the fallback and force the approximation path.
	match := r.Resolve(64.1466, -21.9426, "Reykjavik")
	assert.Nil(t, match)

	// Name matches are never rejected by distance.
	match = r.Resolve(64.1466, -21.9426, "Vigo")
	require.NotNil(t, match)
	assert.Equal(t, models.MatchNameExact, match.Kind)
}

func TestNearestOrdering(t *testing.T) {
	r := NewResolver(testStations(), 0)

	nearest := r.Nearest(42.0, -8.0, 2)
	require.Len(t, nearest, 2)
	assert.Equal(t, "ES-VIG", nearest[0].ID)
	assert.LessOrEqual(t, nearest[0].Distance, nearest[1].Distance)
}

func TestDistance(t *testing.T) {
	// Vigo to A Coruña is roughly 127 km great circle.
	d := Distance(42.2406, -8.7245, 43.3623, -8.3983)
	assert.InDelta(t, 127, d, 10)

	assert.InDelta(t, 0, Distance(51.1, 1.3, 51.1, 1.3), 1e-9)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Vigo", want: "vigo"},
		{in: "A Coruña", want: "a coruna"},
		{in: "  Málaga ", want: "malaga"},
		{in: "Leixões", want: "leixoes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in))
	}
}

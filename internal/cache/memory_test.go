package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/tidecast/internal/models"
)

func testEvents() []models.TideEvent {
	return []models.TideEvent{
		{Time: 5, Height: 4.0, Kind: models.TideHigh},
		{Time: 11, Height: 0.5, Kind: models.TideLow},
	}
}

func TestMemoryTTL(t *testing.T) {
	t0 := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	now := t0

	m, err := NewMemory(16, 6*time.Hour)
	require.NoError(t, err)
	m.Now = func() time.Time { return now }

	ctx := context.Background()
	key := Key("Vigo")
	require.NoError(t, m.Set(ctx, key, testEvents(), "hydrographic"))

	// One hour later the entry is served.
	now = t0.Add(1 * time.Hour)
	entry, ok := m.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, testEvents(), entry.Events)
	assert.Equal(t, "hydrographic", entry.Source)
	assert.Equal(t, t0, entry.SavedAt)

	// Seven hours later it has expired and is evicted.
	now = t0.Add(7 * time.Hour)
	_, ok = m.Get(ctx, key)
	assert.False(t, ok)
}

func TestMemoryMiss(t *testing.T) {
	m, err := NewMemory(16, time.Hour)
	require.NoError(t, err)

	_, ok := m.Get(context.Background(), Key("Nowhere"))
	assert.False(t, ok)
}

func TestMemoryStoresCopy(t *testing.T) {
	m, err := NewMemory(16, time.Hour)
	require.NoError(t, err)

	events := testEvents()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, Key("Vigo"), events, "meteo"))

	// Mutating the caller's slice must not corrupt the cached entry.
	events[0].Height = 99

	entry, ok := m.Get(ctx, Key("Vigo"))
	require.True(t, ok)
	assert.Equal(t, 4.0, entry.Events[0].Height)
}

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, Key("Vigo"), Key("  vigo "))
	assert.Equal(t, Key("A Coruña"), Key("a coruna"))
}

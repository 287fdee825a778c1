package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, ttl time.Duration) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := openTestSQLite(t, 6*time.Hour)
	ctx := context.Background()

	key := Key("Santander")
	require.NoError(t, s.Set(ctx, key, testEvents(), "worldtides"))

	entry, ok := s.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, testEvents(), entry.Events)
	assert.Equal(t, "worldtides", entry.Source)
}

func TestSQLiteExpiry(t *testing.T) {
	t0 := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	now := t0

	s := openTestSQLite(t, 6*time.Hour)
	s.Now = func() time.Time { return now }
	ctx := context.Background()

	key := Key("Vigo")
	require.NoError(t, s.Set(ctx, key, testEvents(), "hydrographic"))

	now = t0.Add(time.Hour)
	_, ok := s.Get(ctx, key)
	assert.True(t, ok, "entry inside the TTL window must be served")

	now = t0.Add(7 * time.Hour)
	_, ok = s.Get(ctx, key)
	assert.False(t, ok, "expired entry must be a miss and get evicted")

	// Gone even if the clock rolls back.
	now = t0.Add(time.Hour)
	_, ok = s.Get(ctx, key)
	assert.False(t, ok)
}

func TestSQLiteOverwrite(t *testing.T) {
	s := openTestSQLite(t, 6*time.Hour)
	ctx := context.Background()

	key := Key("Bilbao")
	require.NoError(t, s.Set(ctx, key, testEvents(), "hydrographic"))

	updated := testEvents()
	updated[0].Height = 3.2
	require.NoError(t, s.Set(ctx, key, updated, "meteo"))

	entry, ok := s.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, 3.2, entry.Events[0].Height)
	assert.Equal(t, "meteo", entry.Source)
}

func TestSQLiteMiss(t *testing.T) {
	s := openTestSQLite(t, time.Hour)
	_, ok := s.Get(context.Background(), Key("Nowhere"))
	assert.False(t, ok)
}

// Package cache stores one fetched day of tide events per station, with a
// fixed time-to-live. A cache hit is treated by the orchestrator as a
// successful fetch, so entries also remember which source produced them.
package cache

import (
	"context"
	"time"

	"github.com/coastwatch/tidecast/internal/models"
	"github.com/coastwatch/tidecast/internal/station"
)

// DefaultTTL is how long a fetched day of tides stays valid.
const DefaultTTL = 6 * time.Hour

// Entry is one cached day of tide events.
type Entry struct {
	Events  []models.TideEvent `json:"events"`
	Source  string             `json:"source"`
	SavedAt time.Time          `json:"savedAt"`
}

// TideCache is the injected cache service. Implementations enforce the
// TTL on read: an expired entry is a miss.
type TideCache interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, events []models.TideEvent, source string) error
}

// Key derives the cache key from a station name, normalized the same way
// the resolver normalizes names.
func Key(stationName string) string {
	return station.NormalizeName(stationName)
}

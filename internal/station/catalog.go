package station

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/internal/models"
)

//go:embed data/stations.json
var rawCatalog []byte

var (
	catalogOnce sync.Once
	catalog     []models.Station
	catalogErr  error
)

// CatalogLoadError means the bundled station catalog could not be read at
// all. Real-data resolution is impossible without it; callers degrade to
// a fully simulated day.
type CatalogLoadError struct {
	Err error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("loading station catalog: %v", e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// Catalog returns the bundled station list. It is decoded once and
// memoized; the slice must be treated as read-only.
func Catalog() ([]models.Station, error) {
	catalogOnce.Do(func() {
		var stations []models.Station
		if err := json.Unmarshal(rawCatalog, &stations); err != nil {
			catalogErr = &CatalogLoadError{Err: err}
			return
		}
		if len(stations) == 0 {
			catalogErr = &CatalogLoadError{Err: fmt.Errorf("catalog is empty")}
			return
		}
		log.Debug().Int("station_count", len(stations)).Msg("Loaded station catalog")
		catalog = stations
	})
	return catalog, catalogErr
}

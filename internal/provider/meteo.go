package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/internal/models"
	"github.com/coastwatch/tidecast/internal/tide"
	"github.com/coastwatch/tidecast/pkg/http/client"
)

const meteoName = "meteo"

// Meteo is the meteorological agency's marine forecast API, tried after
// the hydrographic source. Its tide block carries ISO timestamps rather
// than bare clock strings.
type Meteo struct {
	httpClient client.Interface
	timeout    time.Duration
}

func NewMeteo(httpClient client.Interface, timeout time.Duration) *Meteo {
	return &Meteo{httpClient: httpClient, timeout: timeout}
}

func (p *Meteo) Name() string { return meteoName }

func (p *Meteo) FetchEvents(ctx context.Context, station models.Station, date time.Time) ([]models.TideEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.httpClient.Get(ctx, fmt.Sprintf("/marine/tides?lat=%.4f&lon=%.4f&date=%s",
		station.Latitude, station.Longitude, date.Format("2006-01-02")))
	if err != nil {
		return nil, &UnavailableError{Provider: meteoName, Err: err}
	}
	if resp.StatusCode != 200 {
		return nil, unavailable(meteoName, "status %d", resp.StatusCode)
	}

	var payload struct {
		Tides []struct {
			Time   string  `json:"time"` // "2006-01-02T15:04"
			Height float64 `json:"height_m"`
			Phase  string  `json:"phase"` // "high" | "low"
		} `json:"tides"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, unavailable(meteoName, "decoding response: %v", err)
	}

	log.Debug().Str("station", station.ID).Int("count", len(payload.Tides)).
		Msg("Fetched tide block from meteo source")

	events := make([]models.TideEvent, 0, len(payload.Tides))
	for _, entry := range payload.Tides {
		ts, err := time.Parse("2006-01-02T15:04", entry.Time)
		if err != nil {
			return nil, unavailable(meteoName, "parsing time %q: %v", entry.Time, err)
		}
		// Entries outside the requested day are dropped, not errors.
		if ts.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		kind := models.TideLow
		if entry.Phase == "high" {
			kind = models.TideHigh
		}
		events = append(events, models.TideEvent{
			Time:   tide.DecimalHour(ts),
			Height: entry.Height,
			Kind:   kind,
		})
	}
	return events, nil
}

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

const hydrographicName = "hydrographic"

// Hydrographic is the official port-authority tide table API, the highest
// priority source.
type Hydrographic struct {
	httpClient client.Interface
	timeout    time.Duration
}

func NewHydrographic(httpClient client.Interface, timeout time.Duration) *Hydrographic {
	return &Hydrographic{httpClient: httpClient, timeout: timeout}
}

func (p *Hydrographic) Name() string { return hydrographicName }

func (p *Hydrographic) FetchEvents(ctx context.Context, station models.Station, date time.Time) ([]models.TideEvent, error) {
	id := station.ProviderIDs[hydrographicName]
	if id == "" {
		return nil, unavailable(hydrographicName, "station %s has no hydrographic id", station.ID)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.httpClient.Get(ctx, fmt.Sprintf("/tides/v1/station/%s?date=%s", id, date.Format("2006-01-02")))
	if err != nil {
		return nil, &UnavailableError{Provider: hydrographicName, Err: err}
	}
	if resp.StatusCode != 200 {
		return nil, unavailable(hydrographicName, "status %d", resp.StatusCode)
	}

	var payload struct {
		Mareas []struct {
			Hora   string  `json:"hora"`   // "HH:MM"
			Altura float64 `json:"altura"` // meters
			Tipo   string  `json:"tipo"`   // "pleamar" | "bajamar"
		} `json:"mareas"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, unavailable(hydrographicName, "decoding response: %v", err)
	}

	log.Debug().Str("station", station.ID).Int("count", len(payload.Mareas)).
		Msg("Fetched tide table from hydrographic source")

	events := make([]models.TideEvent, 0, len(payload.Mareas))
	for _, m := range payload.Mareas {
		t, err := tide.ParseClock(m.Hora)
		if err != nil {
			return nil, unavailable(hydrographicName, "parsing time %q: %v", m.Hora, err)
		}
		kind := models.TideLow
		if m.Tipo == "pleamar" {
			kind = models.TideHigh
		}
		events = append(events, models.TideEvent{Time: t, Height: m.Altura, Kind: kind})
	}
	return events, nil
}

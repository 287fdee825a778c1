package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/coastwatch/tidecast/internal/models"
	"github.com/coastwatch/tidecast/internal/tide"
	"github.com/coastwatch/tidecast/pkg/http/client"
)

const worldTidesName = "worldtides"

// WorldTides is the commercial third-party source, last in the chain. Its
// extremes come as epoch seconds relative to UTC; heights are relative to
// mean sea level and may be negative, so they are shifted by the datum
// offset the API reports.
type WorldTides struct {
	httpClient client.Interface
	apiKey     string
	timeout    time.Duration
}

func NewWorldTides(httpClient client.Interface, apiKey string, timeout time.Duration) *WorldTides {
	return &WorldTides{httpClient: httpClient, apiKey: apiKey, timeout: timeout}
}

func (p *WorldTides) Name() string { return worldTidesName }

func (p *WorldTides) FetchEvents(ctx context.Context, station models.Station, date time.Time) ([]models.TideEvent, error) {
	if p.apiKey == "" {
		return nil, unavailable(worldTidesName, "no API key configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.httpClient.Get(ctx, fmt.Sprintf("/api/v3?extremes&datum=LAT&lat=%.4f&lon=%.4f&date=%s&days=1&key=%s",
		station.Latitude, station.Longitude, date.Format("2006-01-02"), p.apiKey))
	if err != nil {
		return nil, &UnavailableError{Provider: worldTidesName, Err: err}
	}
	if resp.StatusCode != 200 {
		return nil, unavailable(worldTidesName, "status %d", resp.StatusCode)
	}

	if status := gjson.GetBytes(resp.Body, "status"); status.Exists() && status.Int() != 200 {
		return nil, unavailable(worldTidesName, "api status %d: %s",
			status.Int(), gjson.GetBytes(resp.Body, "error").String())
	}

	datumOffset := gjson.GetBytes(resp.Body, "responseDatum.LAT").Float()
	extremes := gjson.GetBytes(resp.Body, "extremes").Array()

	log.Debug().Str("station", station.ID).Int("count", len(extremes)).
		Msg("Fetched extremes from worldtides")

	dayKey := date.Format("2006-01-02")
	events := make([]models.TideEvent, 0, len(extremes))
	for _, e := range extremes {
		ts := time.Unix(e.Get("dt").Int(), 0).UTC()
		if ts.Format("2006-01-02") != dayKey {
			continue
		}
		kind := models.TideLow
		if e.Get("type").String() == "High" {
			kind = models.TideHigh
		}
		events = append(events, models.TideEvent{
			Time:   tide.DecimalHour(ts),
			Height: e.Get("height").Float() - datumOffset,
			Kind:   kind,
		})
	}
	return events, nil
}

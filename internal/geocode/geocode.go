// Package geocode resolves free-text place names and literal coordinate
// pairs into latitude/longitude via a Nominatim-compatible service. Every
// failure mode here is non-fatal: callers degrade to a default location.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/pkg/http/client"
)

// Result is a resolved place.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Geocoder is the lookup contract consumed by the orchestrator.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

type Client struct {
	httpClient client.Interface
}

func New(httpClient client.Interface) *Client {
	return &Client{httpClient: httpClient}
}

var coordPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

// ParseCoordinates matches a literal "lat, lon" pair. Values outside the
// valid geographic range do not match.
func ParseCoordinates(query string) (lat, lon float64, ok bool) {
	m := coordPattern.FindStringSubmatch(query)
	if m == nil {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// Geocode resolves a place name or coordinate pair. Coordinate input
// needs no forward lookup; a best-effort reverse lookup fills in a
// human-readable name and is allowed to fail silently.
func (c *Client) Geocode(ctx context.Context, query string) (*Result, error) {
	if lat, lon, ok := ParseCoordinates(query); ok {
		result := &Result{
			Lat:         lat,
			Lon:         lon,
			DisplayName: fmt.Sprintf("%.4f, %.4f", lat, lon),
		}
		if rev, err := c.reverse(ctx, lat, lon); err == nil && rev.DisplayName != "" {
			result.DisplayName = rev.DisplayName
		} else if err != nil {
			log.Debug().Err(err).Msg("Reverse geocoding failed, keeping raw coordinates")
		}
		return result, nil
	}

	resp, err := c.httpClient.Get(ctx, "/search?format=json&limit=1&q="+url.QueryEscape(query))
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("geocoding %q: status %d", query, resp.StatusCode)
	}

	var places []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(resp.Body, &places); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("geocoding %q: no results", query)
	}

	return parsePlace(places[0].Lat, places[0].Lon, places[0].DisplayName)
}

func (c *Client) reverse(ctx context.Context, lat, lon float64) (*Result, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("/reverse?format=json&lat=%f&lon=%f", lat, lon))
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("reverse geocoding: status %d", resp.StatusCode)
	}

	var place struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(resp.Body, &place); err != nil {
		return nil, fmt.Errorf("decoding reverse geocoding response: %w", err)
	}

	return parsePlace(place.Lat, place.Lon, place.DisplayName)
}

func parsePlace(latStr, lonStr, name string) (*Result, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", lonStr, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}
	return &Result{Lat: lat, Lon: lon, DisplayName: name}, nil
}

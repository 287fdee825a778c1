// Package forecast coordinates the whole pipeline for one location query:
// geocoding, station resolution, the prioritized provider chain with its
// TTL cache, and the analytic approximation fallback. The worst case is
// always a fully populated, clearly labeled simulated snapshot; no error
// ever reaches the caller.
package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/keep94/sunrise"
	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/internal/cache"
	"github.com/coastwatch/tidecast/internal/config"
	"github.com/coastwatch/tidecast/internal/geocode"
	"github.com/coastwatch/tidecast/internal/models"
	"github.com/coastwatch/tidecast/internal/provider"
	"github.com/coastwatch/tidecast/internal/station"
	"github.com/coastwatch/tidecast/internal/tide"
	"github.com/coastwatch/tidecast/pkg/metrics"
)

// minUsableEvents is the plausibility floor for provider results: a
// single event cannot bound an interpolation segment, so a provider
// returning fewer than 2 events is treated as failed and the chain
// continues.
const minUsableEvents = 2

// Data source labels for snapshots not backed by a live provider.
const (
	SourceApproximation = "approximation"
	SourceSimulated     = "simulated"
)

type Service struct {
	geocoder  geocode.Geocoder
	resolver  *station.Resolver
	providers []provider.Provider
	cache     cache.TideCache
	cfg       *config.Config

	// now is the wall clock, a field so tests can pin the query time.
	now func() time.Time
}

// NewService wires the pipeline. A nil resolver means the station catalog
// could not be loaded at all; the service then always produces a
// simulated day.
func NewService(geocoder geocode.Geocoder, resolver *station.Resolver, providers []provider.Provider, tideCache cache.TideCache, cfg *config.Config) *Service {
	return &Service{
		geocoder:  geocoder,
		resolver:  resolver,
		providers: providers,
		cache:     tideCache,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Forecast runs one query end to end and always returns a snapshot.
func (s *Service) Forecast(ctx context.Context, query string) *models.TideSnapshot {
	now := s.now()

	loc := s.resolveLocation(ctx, query)
	events := sanitizeEvents(s.fetchEvents(ctx, &loc, now))
	if len(events) < minUsableEvents {
		// Upstream data collapsed under sanitizing; the approximation
		// always yields a full day.
		events = sanitizeEvents(s.approximate(&loc, now))
	}

	curve, err := tide.SampleCurve(events, tide.DefaultCurveStep)
	if err != nil {
		log.Error().Err(err).Msg("Sampling curve failed after sanitizing")
		curve = []models.CurvePoint{}
	}

	height, rising, err := tide.EstimateNow(events, tide.DecimalHour(now))
	if err != nil {
		log.Error().Err(err).Msg("Estimating current tide failed after sanitizing")
	}

	return &models.TideSnapshot{
		ResponseType:  "tide",
		Location:      loc,
		Date:          now.Format("2006-01-02"),
		Sun:           sunTimes(loc.UsedLat, loc.UsedLon, now),
		Events:        events,
		Curve:         curve,
		CurrentHeight: height,
		Rising:        rising,
		Coefficient:   tide.Coefficient(events),
	}
}

// resolveLocation covers the GEOCODING and RESOLVING_STATION stages. Both
// fail soft: a geocoding failure falls back to the configured default
// location, and an unresolvable station routes the query to the
// approximation path.
func (s *Service) resolveLocation(ctx context.Context, query string) models.ResolvedLocation {
	loc := models.ResolvedLocation{
		Query: query,
		Match: models.MatchNone,
	}

	hint := query
	if result, err := s.geocoder.Geocode(ctx, query); err == nil {
		lat, lon := result.Lat, result.Lon
		loc.RequestedLat, loc.RequestedLon = &lat, &lon
		loc.UsedLat, loc.UsedLon = lat, lon
		loc.DisplayName = result.DisplayName
	} else {
		log.Warn().Err(err).Str("query", query).Msg("Geocoding failed, using default location")
		loc.UsedLat, loc.UsedLon = s.cfg.DefaultLat, s.cfg.DefaultLon
		loc.DisplayName = s.cfg.DefaultName
		loc.Disclaimer = fmt.Sprintf("Could not find %q; showing %s instead.", query, s.cfg.DefaultName)
		hint = s.cfg.DefaultName
	}

	if s.resolver == nil {
		loc.IsApproximate = true
		loc.DataSource = SourceSimulated
		loc.Disclaimer = joinDisclaimers(loc.Disclaimer,
			"The station catalog is unavailable; this is a simulated tide day.")
		return loc
	}

	match := s.resolver.Resolve(loc.UsedLat, loc.UsedLon, hint)
	if match == nil {
		loc.Disclaimer = joinDisclaimers(loc.Disclaimer,
			"No tide station close enough to this location; the curve is a local approximation.")
		return loc
	}

	st := match.Station
	loc.Station = &st
	loc.Match = match.Kind
	loc.DistanceKM = match.DistanceKM
	loc.UsedLat, loc.UsedLon = st.Latitude, st.Longitude
	if loc.DisplayName == "" {
		loc.DisplayName = st.Name
	}
	if match.Kind == models.MatchNearest {
		loc.Disclaimer = joinDisclaimers(loc.Disclaimer,
			fmt.Sprintf("No station matched %q; using nearest station %s, %.0f km away.",
				query, st.Name, match.DistanceKM))
	}
	return loc
}

// fetchEvents covers FETCHING and APPROXIMATING. The cache is consulted
// first and a hit counts as a successful fetch; otherwise each provider
// is tried in priority order and the first one returning a usable day
// wins. Exhausting the chain falls through to the approximation.
func (s *Service) fetchEvents(ctx context.Context, loc *models.ResolvedLocation, now time.Time) []models.TideEvent {
	if loc.Station == nil {
		return s.approximate(loc, now)
	}

	key := cache.Key(loc.Station.Name)
	if entry, ok := s.cache.Get(ctx, key); ok {
		metrics.ObserveCacheLookup(true)
		log.Debug().Str("key", key).Msg("Cache HIT for tide events")
		loc.DataSource = entry.Source
		return entry.Events
	}
	metrics.ObserveCacheLookup(false)

	for _, p := range s.providers {
		if ctx.Err() != nil {
			// Canceled or superseded query; skip straight to the
			// approximation rather than burning timeouts.
			break
		}

		events, err := p.FetchEvents(ctx, *loc.Station, now)
		if err != nil {
			metrics.ObserveProviderAttempt(p.Name(), metrics.OutcomeError)
			log.Warn().Err(err).Str("provider", p.Name()).Msg("Provider failed, trying next source")
			continue
		}
		if len(events) < minUsableEvents {
			metrics.ObserveProviderAttempt(p.Name(), metrics.OutcomeEmpty)
			log.Warn().Str("provider", p.Name()).Int("count", len(events)).
				Msg("Provider returned an implausibly small day, trying next source")
			continue
		}

		metrics.ObserveProviderAttempt(p.Name(), metrics.OutcomeSuccess)
		loc.DataSource = p.Name()
		if err := s.cache.Set(ctx, key, events, p.Name()); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Caching tide events failed")
		}
		return events
	}

	return s.approximate(loc, now)
}

func (s *Service) approximate(loc *models.ResolvedLocation, now time.Time) []models.TideEvent {
	metrics.ObserveApproximation()
	loc.IsApproximate = true
	if loc.DataSource != SourceSimulated {
		loc.DataSource = SourceApproximation
		loc.Disclaimer = joinDisclaimers(loc.Disclaimer,
			"Tide heights are computed locally from an astronomical approximation; do not use for navigation.")
	}
	return tide.ApproximateEvents(now, loc.UsedLat, loc.UsedLon)
}

// sanitizeEvents sorts ascending, clamps heights at the 0 m floor and
// drops duplicate times, so the synthesis engine never sees a degenerate
// interval.
func sanitizeEvents(events []models.TideEvent) []models.TideEvent {
	sorted := make([]models.TideEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	out := sorted[:0]
	for i, e := range sorted {
		if i > 0 && e.Time == out[len(out)-1].Time {
			continue
		}
		if e.Height < 0 {
			e.Height = 0
		}
		out = append(out, e)
	}
	return out
}

func sunTimes(lat, lon float64, t time.Time) models.SunTimes {
	var s sunrise.Sunrise
	s.Around(lat, lon, t)
	return models.SunTimes{
		Sunrise: s.Sunrise(),
		Sunset:  s.Sunset(),
	}
}

func joinDisclaimers(existing, added string) string {
	if existing == "" {
		return added
	}
	return existing + " " + added
}

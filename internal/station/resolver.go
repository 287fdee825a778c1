package station

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/coastwatch/tidecast/internal/models"
)

// Match is the result of resolving a query point against the catalog.
type Match struct {
	Station    models.Station
	Kind       models.MatchKind
	DistanceKM float64
}

// Resolver finds the best station for a query by name or by great-circle
// distance. It holds an immutable station list.
type Resolver struct {
	stations []models.Station

	// maxFallbackKM rejects nearest-distance matches farther than this
	// from the query point. Zero means no limit. Name matches are never
	// rejected.
	maxFallbackKM float64
}

func NewResolver(stations []models.Station, maxFallbackKM float64) *Resolver {
	return &Resolver{
		stations:      stations,
		maxFallbackKM: maxFallbackKM,
	}
}

// Resolve matches a station in priority order: exact case/diacritic
// insensitive name equality against the hint, substring containment in
// either direction, then nearest by haversine distance. A nil result
// means no station was usable within tolerance.
func (r *Resolver) Resolve(lat, lon float64, hint string) *Match {
	if len(r.stations) == 0 {
		return nil
	}

	if hint != "" {
		needle := NormalizeName(hint)

		for _, s := range r.stations {
			if NormalizeName(s.Name) == needle {
				return &Match{
					Station:    s,
					Kind:       models.MatchNameExact,
					DistanceKM: Distance(lat, lon, s.Latitude, s.Longitude),
				}
			}
		}

		for _, s := range r.stations {
			name := NormalizeName(s.Name)
			if strings.Contains(name, needle) || strings.Contains(needle, name) {
				return &Match{
					Station:    s,
					Kind:       models.MatchNameSubstring,
					DistanceKM: Distance(lat, lon, s.Latitude, s.Longitude),
				}
			}
		}
	}

	nearest := r.Nearest(lat, lon, 1)[0]
	if r.maxFallbackKM > 0 && nearest.Distance > r.maxFallbackKM {
		return nil
	}
	return &Match{
		Station:    nearest,
		Kind:       models.MatchNearest,
		DistanceKM: nearest.Distance,
	}
}

// Nearest returns up to limit stations sorted by distance from the query
// point, with Distance filled in on the returned copies.
func (r *Resolver) Nearest(lat, lon float64, limit int) []models.Station {
	withDistance := make([]models.Station, len(r.stations))
	for i, s := range r.stations {
		s.Distance = Distance(lat, lon, s.Latitude, s.Longitude)
		withDistance[i] = s
	}

	sort.Slice(withDistance, func(i, j int) bool {
		return withDistance[i].Distance < withDistance[j].Distance
	})

	if limit > 0 && len(withDistance) > limit {
		withDistance = withDistance[:limit]
	}
	return withDistance
}

// Distance computes the great-circle distance in kilometers between two
// points using the haversine formula on a spherical Earth.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases a station or place name and strips diacritics,
// so "A Coruña" and "a coruna" compare equal. Also used as the cache key
// normalization.
func NormalizeName(name string) string {
	folded, _, err := transform.String(foldTransformer, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

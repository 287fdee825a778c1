package models

// Station is a tide-measuring location from the bundled catalog. The
// catalog is loaded once and stations are never mutated afterwards;
// Distance is the only field filled in per query, on copies.
type Station struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Latitude    float64           `json:"lat"`
	Longitude   float64           `json:"lon"`
	ProviderIDs map[string]string `json:"providerIds,omitempty"`
	Distance    float64           `json:"distance,omitempty"` // km from the query point
}

// MatchKind records how a station was matched to the user's request. The
// distinction between a genuine name match and a distance fallback is
// surfaced to the user, since the forecast may not be for the literally
// requested place.
type MatchKind string

const (
	MatchNameExact     MatchKind = "NAME_EXACT"
	MatchNameSubstring MatchKind = "NAME_SUBSTRING"
	MatchNearest       MatchKind = "NEAREST"
	MatchNone          MatchKind = "NONE"
)

// ResolvedLocation captures how a free-text query was turned into a
// physical place, including whether the station actually matched the
// request or was a nearest-neighbor substitute.
type ResolvedLocation struct {
	Query         string    `json:"query"`
	RequestedLat  *float64  `json:"requestedLat,omitempty"`
	RequestedLon  *float64  `json:"requestedLon,omitempty"`
	Station       *Station  `json:"station,omitempty"`
	UsedLat       float64   `json:"usedLat"`
	UsedLon       float64   `json:"usedLon"`
	DisplayName   string    `json:"displayName"`
	Match         MatchKind `json:"match"`
	DistanceKM    float64   `json:"distanceKm,omitempty"`
	IsApproximate bool      `json:"isApproximate"`
	DataSource    string    `json:"dataSource"`
	Disclaimer    string    `json:"disclaimer,omitempty"`
}

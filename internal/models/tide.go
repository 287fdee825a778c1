package models

import "time"

type TideKind string

const (
	TideHigh TideKind = "HIGH"
	TideLow  TideKind = "LOW"
)

// TideEvent is a single high or low water extremum for one calendar day.
// Time is a decimal hour in [0,24), height is meters above datum.
type TideEvent struct {
	Time   float64  `json:"time"`
	Height float64  `json:"height"`
	Kind   TideKind `json:"kind"`
}

// CurvePoint is one sample of the reconstructed day curve.
type CurvePoint struct {
	Time   float64 `json:"time"`
	Height float64 `json:"height"`
}

type SunTimes struct {
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

// TideSnapshot is the full result of one location query. It is built once
// per query and replaces any previous snapshot entirely.
type TideSnapshot struct {
	ResponseType  string           `json:"responseType"`
	Location      ResolvedLocation `json:"location"`
	Date          string           `json:"date"` // YYYY-MM-DD
	Sun           SunTimes         `json:"sun"`
	Events        []TideEvent      `json:"events"`
	Curve         []CurvePoint     `json:"curve"`
	CurrentHeight float64          `json:"currentHeight"`
	Rising        bool             `json:"rising"`
	Coefficient   int              `json:"coefficient"`
}

// Package provider holds the adapters for upstream tide-data sources.
// The orchestrator tries them in a fixed priority order: the official
// hydrographic source first, then the meteorological agency, then the
// commercial API. Each adapter normalizes its response into the shared
// TideEvent model; anything it cannot parse is an error, never a panic.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/coastwatch/tidecast/internal/models"
)

// Provider fetches one day of tide extremes for a station from a single
// upstream source. An error, a timeout, or an implausibly small result is
// treated by the caller as "this source failed", triggering the next one.
type Provider interface {
	Name() string
	FetchEvents(ctx context.Context, station models.Station, date time.Time) ([]models.TideEvent, error)
}

// UnavailableError wraps any upstream failure so callers can log the
// provider that caused it.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func unavailable(name string, format string, args ...interface{}) error {
	return &UnavailableError{Provider: name, Err: fmt.Errorf(format, args...)}
}

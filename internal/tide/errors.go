package tide

import (
	"errors"
	"fmt"
)

// ErrNoEvents is returned when height estimation is asked for an empty
// event list. Callers are expected to sanitize input before synthesis.
var ErrNoEvents = errors.New("no tide events")

// DegenerateIntervalError reports two events sharing the same time, which
// would make the interpolation denominator zero.
type DegenerateIntervalError struct {
	Time float64
}

func (e *DegenerateIntervalError) Error() string {
	return fmt.Sprintf("degenerate interval: two tide events at t=%s", FormatClock(e.Time))
}

// NewDegenerateIntervalError creates a new degenerate interval error.
func NewDegenerateIntervalError(t float64) *DegenerateIntervalError {
	return &DegenerateIntervalError{Time: t}
}

package tide

import (
	"math"

	"github.com/coastwatch/tidecast/internal/models"
)

// Conventional bounds for the dimensionless tidal coefficient.
const (
	CoefficientMin = 20
	CoefficientMax = 120
)

// Coefficient summarizes the day's tidal range as a conventional 20-120
// index. It is always derived from the realized event list, so the index
// stays consistent whether the events came from a provider or from the
// analytic approximation.
func Coefficient(events []models.TideEvent) int {
	if len(events) == 0 {
		return CoefficientMin
	}

	minH, maxH := events[0].Height, events[0].Height
	for _, e := range events[1:] {
		minH = math.Min(minH, e.Height)
		maxH = math.Max(maxH, e.Height)
	}

	c := int(math.Round((maxH - minH) / 4 * 100))
	if c < CoefficientMin {
		return CoefficientMin
	}
	if c > CoefficientMax {
		return CoefficientMax
	}
	return c
}

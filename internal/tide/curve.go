package tide

import (
	"math"
	"sort"

	"github.com/coastwatch/tidecast/internal/models"
)

const (
	// SemidiurnalHalfPeriod is half of the ~12.42h interval between
	// successive tides of the same type. Virtual neighbors beyond the
	// first and last event of the day are placed this far out.
	SemidiurnalHalfPeriod = 6.21

	// VirtualAmplitude is the height offset applied when extrapolating a
	// virtual neighbor. It is a heuristic with no physical basis beyond
	// producing a plausible curve shape near midnight.
	VirtualAmplitude = 2.5

	// DefaultCurveStep samples the day at 15-minute resolution.
	DefaultCurveStep = 0.25

	// slopeEpsilon is the forward offset, in decimal hours, used by the
	// finite-difference rising/falling check. Roughly one minute.
	slopeEpsilon = 1.0 / 60
)

// HeightAt estimates sea level at decimal hour t from a sparse list of
// high/low events. Between two consecutive events the height follows a
// half-cycle raised cosine:
//
//	h(t) = (h1+h2)/2 + (h1-h2)/2 * cos(pi * (t-t1) / (t2-t1))
//
// which passes exactly through every event and changes slope sign at each
// extremum. Beyond the first or last event of the day, virtual neighbors
// keep the curve continuous across midnight without needing data from the
// adjacent day.
func HeightAt(events []models.TideEvent, t float64) (float64, error) {
	if len(events) == 0 {
		return 0, ErrNoEvents
	}

	evs := sortedEvents(events)
	for i := 1; i < len(evs); i++ {
		if evs[i].Time == evs[i-1].Time {
			return 0, NewDegenerateIntervalError(evs[i].Time)
		}
	}

	// Extend with virtual neighbors until t is bracketed.
	for evs[0].Time > t {
		evs = append([]models.TideEvent{virtualNeighbor(evs[0], -1)}, evs...)
	}
	for evs[len(evs)-1].Time < t {
		evs = append(evs, virtualNeighbor(evs[len(evs)-1], +1))
	}

	idx := sort.Search(len(evs), func(i int) bool {
		return evs[i].Time >= t
	})
	if idx < len(evs) && evs[idx].Time == t {
		return evs[idx].Height, nil
	}

	e1, e2 := evs[idx-1], evs[idx]
	return (e1.Height+e2.Height)/2 +
		(e1.Height-e2.Height)/2*math.Cos(math.Pi*(t-e1.Time)/(e2.Time-e1.Time)), nil
}

// SampleCurve evaluates HeightAt at a fixed step across [0,24] inclusive.
// Fewer than 2 events cannot bound an interpolation segment, so the result
// is an empty sequence rather than an error.
func SampleCurve(events []models.TideEvent, step float64) ([]models.CurvePoint, error) {
	if len(events) < 2 {
		return []models.CurvePoint{}, nil
	}
	if step <= 0 {
		step = DefaultCurveStep
	}

	n := int(math.Floor(24/step + 1e-9))
	points := make([]models.CurvePoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) * step
		h, err := HeightAt(events, t)
		if err != nil {
			return nil, err
		}
		points = append(points, models.CurvePoint{Time: t, Height: h})
	}
	return points, nil
}

// EstimateNow reports the current height and whether the tide is rising,
// using a finite-difference slope check one minute forward. Both samples
// go through the same interpolation so the comparison stays consistent
// even across a virtual-event boundary.
func EstimateNow(events []models.TideEvent, now float64) (height float64, rising bool, err error) {
	height, err = HeightAt(events, now)
	if err != nil {
		return 0, false, err
	}
	forward, err := HeightAt(events, now+slopeEpsilon)
	if err != nil {
		return 0, false, err
	}
	return height, forward > height, nil
}

// virtualNeighbor extrapolates an event one semidiurnal half period beyond
// a boundary event, flipping high/low and clamping at the 0 m floor.
func virtualNeighbor(e models.TideEvent, dir float64) models.TideEvent {
	v := models.TideEvent{Time: e.Time + dir*SemidiurnalHalfPeriod}
	if e.Kind == models.TideLow {
		v.Kind = models.TideHigh
		v.Height = e.Height + VirtualAmplitude
	} else {
		v.Kind = models.TideLow
		v.Height = math.Max(0, e.Height-VirtualAmplitude)
	}
	return v
}

func sortedEvents(events []models.TideEvent) []models.TideEvent {
	evs := make([]models.TideEvent, len(events))
	copy(evs, events)
	sort.Slice(evs, func(i, j int) bool {
		return evs[i].Time < evs[j].Time
	})
	return evs
}

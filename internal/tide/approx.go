package tide

import (
	"math"
	"sort"
	"time"

	"github.com/coastwatch/tidecast/internal/models"
)

const (
	// synodicMonthDays is the lunar synodic period driving the
	// spring/neap cycle of the approximation.
	synodicMonthDays = 29.530588

	// approxMeanLevel and approxMinHeight bound the synthesized heights.
	approxMeanLevel = 2.0
	approxMinHeight = 0.2
)

// lunarEpoch is the new moon of 2000-01-06, the fixed reference for the
// phase term.
var lunarEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// ApproximateEvents synthesizes a plausible semidiurnal day when no real
// data source is available: two highs and two lows whose timing follows
// the lunar phase and longitude, and whose amplitude grows with latitude
// and near spring tides. Deterministic for a given date and location; no
// accuracy is guaranteed.
func ApproximateEvents(date time.Time, lat, lon float64) []models.TideEvent {
	days := date.Sub(lunarEpoch).Hours() / 24
	phase := math.Mod(days, synodicMonthDays) / synodicMonthDays
	if phase < 0 {
		phase += 1
	}

	// Spring tides peak near new and full moon.
	spring := math.Abs(math.Cos(2 * math.Pi * phase))
	amplitude := 0.8 + 1.7*math.Abs(math.Sin(lat*math.Pi/180)) + 0.8*spring

	// The lunar transit drifts through the day over a synodic month;
	// longitude shifts local timing by one hour per 15 degrees.
	firstHigh := NormalizeHour(phase*4*SemidiurnalHalfPeriod + lon/15)

	high := approxMeanLevel + amplitude
	low := math.Max(approxMinHeight, approxMeanLevel-amplitude)

	events := make([]models.TideEvent, 0, 4)
	for i := 0.0; i < 2; i++ {
		ht := NormalizeHour(firstHigh + i*2*SemidiurnalHalfPeriod)
		events = append(events,
			models.TideEvent{Time: ht, Height: high, Kind: models.TideHigh},
			models.TideEvent{Time: NormalizeHour(ht + SemidiurnalHalfPeriod), Height: low, Kind: models.TideLow},
		)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events
}

package tide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastwatch/tidecast/internal/models"
)

// The canonical semidiurnal day used throughout these tests: two highs at
// 4.0 m and two lows at 0.5 m.
func sampleDay() []models.TideEvent {
	return []models.TideEvent{
		{Time: 5, Height: 4.0, Kind: models.TideHigh},
		{Time: 11, Height: 0.5, Kind: models.TideLow},
		{Time: 17, Height: 4.0, Kind: models.TideHigh},
		{Time: 23, Height: 0.5, Kind: models.TideLow},
	}
}

func TestHeightAtPassesThroughEvents(t *testing.T) {
	events := sampleDay()
	for _, e := range events {
		h, err := HeightAt(events, e.Time)
		require.NoError(t, err)
		assert.Equal(t, e.Height, h, "curve must pass exactly through the event at t=%v", e.Time)
	}
}

func TestHeightAtMidpointBetweenEvents(t *testing.T) {
	events := sampleDay()

	h, err := HeightAt(events, 8)
	require.NoError(t, err)
	assert.Greater(t, h, 0.5)
	assert.Less(t, h, 4.0)

	// Midpoint of a cosine half cycle is the mean of the two heights.
	assert.InDelta(t, (4.0+0.5)/2, h, 1e-9)
}

func TestHeightAtMonotoneOnFallingSegment(t *testing.T) {
	events := sampleDay()

	prev, err := HeightAt(events, 5)
	require.NoError(t, err)
	for q := 5.25; q <= 11; q += 0.25 {
		h, err := HeightAt(events, q)
		require.NoError(t, err)
		assert.Less(t, h, prev, "height must fall monotonically from high toward low at t=%v", q)
		prev = h
	}
}

func TestHeightAtUnsortedInput(t *testing.T) {
	events := sampleDay()
	shuffled := []models.TideEvent{events[2], events[0], events[3], events[1]}

	want, err := HeightAt(events, 9.5)
	require.NoError(t, err)
	got, err := HeightAt(shuffled, 9.5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHeightAtExtrapolatesBeyondDay(t *testing.T) {
	events := sampleDay()

	// Before the first event the curve bends toward a virtual low/high
	// rather than going flat or negative.
	for _, q := range []float64{0, 0.5, 2, 23.5, 24} {
		h, err := HeightAt(events, q)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, h, 0.0, "extrapolated height must stay above the floor at t=%v", q)
	}
}

func TestHeightAtContinuousAcrossDayBoundary(t *testing.T) {
	events := sampleDay()

	before, err := HeightAt(events, 23.999)
	require.NoError(t, err)
	at, err := HeightAt(events, 24)
	require.NoError(t, err)
	assert.InDelta(t, at, before, 0.01,
		"virtual-event construction must keep the curve continuous near midnight")
}

func TestHeightAtSparseLateDay(t *testing.T) {
	// A single event late in the day forces repeated virtual neighbors
	// to bracket early-morning queries.
	events := []models.TideEvent{{Time: 23, Height: 3.0, Kind: models.TideHigh}}
	h, err := HeightAt(events, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, h, 0.0)
}

func TestHeightAtErrors(t *testing.T) {
	_, err := HeightAt(nil, 12)
	assert.ErrorIs(t, err, ErrNoEvents)

	degenerate := []models.TideEvent{
		{Time: 5, Height: 4.0, Kind: models.TideHigh},
		{Time: 5, Height: 0.5, Kind: models.TideLow},
	}
	_, err = HeightAt(degenerate, 12)
	var degErr *DegenerateIntervalError
	require.ErrorAs(t, err, &degErr)
	assert.Equal(t, 5.0, degErr.Time)
}

func TestSampleCurve(t *testing.T) {
	events := sampleDay()

	curve, err := SampleCurve(events, DefaultCurveStep)
	require.NoError(t, err)

	// [0,24] inclusive at 15-minute resolution.
	require.Len(t, curve, 97)
	assert.Equal(t, 0.0, curve[0].Time)
	assert.Equal(t, 24.0, curve[len(curve)-1].Time)

	// Deterministic: sampling twice gives identical output.
	again, err := SampleCurve(events, DefaultCurveStep)
	require.NoError(t, err)
	assert.Equal(t, curve, again)
}

func TestSampleCurveDegenerateInputs(t *testing.T) {
	curve, err := SampleCurve(nil, DefaultCurveStep)
	require.NoError(t, err)
	assert.Empty(t, curve)

	single := []models.TideEvent{{Time: 12, Height: 2, Kind: models.TideHigh}}
	curve, err = SampleCurve(single, DefaultCurveStep)
	require.NoError(t, err)
	assert.Empty(t, curve, "one event cannot bound an interpolation segment")
}

func TestEstimateNow(t *testing.T) {
	events := sampleDay()

	tests := []struct {
		name       string
		now        float64
		wantRising bool
	}{
		{name: "falling after morning high", now: 8, wantRising: false},
		{name: "rising after midday low", now: 14, wantRising: true},
		{name: "falling after evening high", now: 20, wantRising: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			height, rising, err := EstimateNow(events, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRising, rising)
			assert.Greater(t, height, 0.0)
			assert.Less(t, height, 4.5)
		})
	}
}

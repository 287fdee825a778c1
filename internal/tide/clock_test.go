package tide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		want    float64
		wantErr bool
	}{
		{name: "midnight", clock: "00:00", want: 0},
		{name: "morning", clock: "05:00", want: 5},
		{name: "half past", clock: "11:30", want: 11.5},
		{name: "quarter", clock: "17:15", want: 17.25},
		{name: "end of day", clock: "23:59", want: 23 + 59.0/60},
		{name: "whitespace", clock: " 08:45 ", want: 8.75},
		{name: "missing minutes", clock: "08", wantErr: true},
		{name: "hour out of range", clock: "24:00", wantErr: true},
		{name: "minute out of range", clock: "12:60", wantErr: true},
		{name: "not numeric", clock: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.clock)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "05:00", FormatClock(5))
	assert.Equal(t, "11:30", FormatClock(11.5))
	assert.Equal(t, "00:00", FormatClock(24))
	assert.Equal(t, "23:00", FormatClock(-1))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "06:21", "12:42", "18:59"} {
		h, err := ParseClock(clock)
		require.NoError(t, err)
		assert.Equal(t, clock, FormatClock(h))
	}
}

func TestNormalizeHour(t *testing.T) {
	assert.InDelta(t, 1.5, NormalizeHour(25.5), 1e-9)
	assert.InDelta(t, 22.5, NormalizeHour(-1.5), 1e-9)
	assert.InDelta(t, 0, NormalizeHour(48), 1e-9)
	assert.InDelta(t, 13, NormalizeHour(13), 1e-9)
}

func TestDecimalHour(t *testing.T) {
	ts := time.Date(2026, time.September, 1, 14, 30, 36, 0, time.UTC)
	assert.InDelta(t, 14.51, DecimalHour(ts), 1e-9)
}

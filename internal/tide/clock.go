package tide

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseClock converts an "HH:MM" string into decimal hours.
func ParseClock(clock string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parsing clock %q: want HH:MM", clock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", clock, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parsing clock %q: out of range", clock)
	}

	return float64(hours) + float64(minutes)/60, nil
}

// FormatClock renders decimal hours as "HH:MM", rounding to the minute.
func FormatClock(hour float64) string {
	hour = NormalizeHour(hour)
	totalMinutes := int(math.Round(hour * 60))
	if totalMinutes >= 24*60 {
		totalMinutes = 0
	}
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// NormalizeHour wraps a decimal hour into [0,24).
func NormalizeHour(hour float64) float64 {
	hour = math.Mod(hour, 24)
	if hour < 0 {
		hour += 24
	}
	return hour
}

// DecimalHour converts a wall-clock time into decimal hours since local
// midnight.
func DecimalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

package dateutil

import (
	"fmt"
	"time"
)

// FormatCountdown renders a remaining duration as "1d 2h 3m". A
// non-positive duration renders as "Ready".
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "Ready"
	}

	totalMinutes := int(d / time.Minute)
	days := totalMinutes / 1440
	hours := (totalMinutes % 1440) / 60
	minutes := totalMinutes % 60

	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// Remaining returns how much of window is left since start, measured
// at now. Negative results are clamped to zero.
func Remaining(start time.Time, window time.Duration, now time.Time) time.Duration {
	remaining := start.Add(window).Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}

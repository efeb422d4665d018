package tui

import (
	"fmt"
	"time"

	"github.com/mrz1836/buildwatch/internal/clock"
)

// DefaultClock is the clock used by RelativeTime.
//
//nolint:gochecknoglobals // Package-level default for dependency injection
var DefaultClock clock.Clock = clock.RealClock{}

// RelativeTime formats t relative to now ("just now", "3 hours ago").
func RelativeTime(t time.Time) string {
	return RelativeTimeWith(t, DefaultClock)
}

// RelativeTimeWith formats t relative to c.Now(). The zero time renders as "never".
func RelativeTimeWith(t time.Time, c clock.Clock) string {
	if t.IsZero() {
		return "never"
	}
	diff := c.Now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return plural(int(diff.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatDuration renders an attempt duration rounded to the second.
// Negative durations (end before start) render as "0s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

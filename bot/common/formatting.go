package common

import (
	"fmt"
	"time"
)

// FormatClock renders an instant as 12-hour clock text, e.g. "5:58 AM"
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// FormatOffset renders a per-prayer minute offset for display
func FormatOffset(offset int) string {
	if offset == 0 {
		return "No offset"
	}
	sign := ""
	if offset > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%d min", sign, offset)
}

// HumanizeDuration renders a duration as rough human text, e.g.
// "30 seconds", "1 minute", "2 hours 5 min"
func HumanizeDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 0 {
		return "now"
	}
	if seconds < 60 {
		return fmt.Sprintf("%d %s", seconds, plural("second", seconds))
	}

	minutes := seconds / 60
	hours := minutes / 60
	remaining := minutes % 60

	if hours == 0 {
		return fmt.Sprintf("%d %s", minutes, plural("minute", minutes))
	}
	if remaining == 0 {
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	}
	return fmt.Sprintf("%d %s %d min", hours, plural("hour", hours), remaining)
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

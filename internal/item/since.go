package item

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// FormatPostedSince renders the minute-granular age of postedAt relative to
// now: minutes below one hour, hours below one day, days otherwise.
func FormatPostedSince(postedAt, now time.Time) string {
	minutes := int64(now.Sub(postedAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	switch {
	case minutes >= minutesPerDay:
		return pluralized(minutes/minutesPerDay, "day") + " ago"
	case minutes >= 60:
		return pluralized(minutes/60, "hour") + " ago"
	default:
		return pluralized(minutes, "minute") + " ago"
	}
}

func pluralized(value int64, word string) string {
	if value > 1 {
		return fmt.Sprintf("%d %ss", value, word)
	}
	return fmt.Sprintf("%d %s", value, word)
}

package service

import (
	"fmt"
	"time"
)

// Elapsed renders the time since sentAt as a human-readable bucket: the
// coarsest unit whose threshold is reached, floor-divided. Below 60s the
// unit is seconds, below 3600s minutes, below 86400s hours, days otherwise.
func Elapsed(sentAt, now time.Time) string {
	secs := int64(now.Sub(sentAt) / time.Second)
	if secs < 0 {
		secs = 0
	}

	switch {
	case secs < 60:
		return formatUnit(secs, "second")
	case secs < 3600:
		return formatUnit(secs/60, "minute")
	case secs < 86400:
		return formatUnit(secs/3600, "hour")
	default:
		return formatUnit(secs/86400, "day")
	}
}

func formatUnit(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

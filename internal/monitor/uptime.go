package monitor

import (
	"strconv"
	"strings"
	"time"
)

// FormatUptime renders d as "1 day, 3 hours, 12 minutes" or, when short is
// set, "1d 3h 12m". Zero components are omitted. Durations under a minute
// are shown in seconds.
func FormatUptime(d time.Duration, short bool) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		secs := int(d / time.Second)
		if short {
			return strconv.Itoa(secs) + "s"
		}
		return plural(secs, "second")
	}

	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	units := []struct {
		n           int
		long, short string
	}{
		{days, "day", "d"},
		{hours, "hour", "h"},
		{minutes, "minute", "m"},
	}

	var parts []string
	for _, u := range units {
		if u.n == 0 {
			continue
		}
		if short {
			parts = append(parts, strconv.Itoa(u.n)+u.short)
		} else {
			parts = append(parts, plural(u.n, u.long))
		}
	}
	if short {
		return strings.Join(parts, " ")
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

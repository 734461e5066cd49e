package util

import (
	"fmt"
	"time"
)

// TimeSince is FormatDuration of the time elapsed since t
func TimeSince(t time.Time) string {
	return FormatDuration(time.Since(t))
}

var durationUnits = []struct {
	size   time.Duration
	suffix string
}{
	{24 * time.Hour, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
	{time.Second, "s"},
}

// FormatDuration renders d in at most its two largest units, dropping the smaller one once the larger reaches 10,
// e.g. 1m30s, 15m, 2d4h. Durations under a second are shown in milliseconds
func FormatDuration(d time.Duration) string {
	if d > 0 && d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Truncate(time.Second)
	for i, u := range durationUnits {
		n := d / u.size
		if n == 0 && u.size != time.Second {
			continue
		}
		res := fmt.Sprintf("%d%s", n, u.suffix)
		if n < 10 && i+1 < len(durationUnits) {
			next := durationUnits[i+1]
			res += fmt.Sprintf("%d%s", (d%u.size)/next.size, next.suffix)
		}
		return res
	}
	return "0s"
}

package common

import (
	"fmt"
	"time"
)

// FormatDurationConcise renders whole days, hours, minutes or seconds with a
// single unit suffix ("14d", "1h", "90s") and falls back to d.String().
func FormatDurationConcise(d time.Duration) string {
	units := []struct {
		size   time.Duration
		suffix string
	}{
		{24 * time.Hour, "d"},
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
	}
	for _, u := range units {
		if d > 0 && d%u.size == 0 {
			return fmt.Sprintf("%d%s", d/u.size, u.suffix)
		}
	}
	return d.String()
}

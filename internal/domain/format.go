package domain

import (
	"fmt"
	"time"
)

// FormatDuration renders d as MM:SS.CC. Minutes are zero-padded to two digits
// but never truncated, so 999 minutes renders as "999:00.00". Centiseconds are
// truncated, never rounded up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	seconds := int64(d/time.Second) % 60
	centis := int64(d%time.Second) / int64(10*time.Millisecond)
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

// zeroDisplay is what an idle stopwatch shows.
var zeroDisplay = FormatDuration(0)

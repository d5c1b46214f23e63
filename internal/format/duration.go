package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats an evaluation time for display. Small
// operations on short values finish in nanoseconds, so the unit follows the
// magnitude: ns, µs and ms as whole numbers, then seconds and above rounded
// to the millisecond. Negative durations print as 0ns.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "0ns"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

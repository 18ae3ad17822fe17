package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration picks the coarsest unit that keeps a short run
// readable: µs below a millisecond, ms below a second, and Duration.String
// beyond that, rounded to the millisecond.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}

// FormatMillis renders a duration as whole milliseconds, the unit in which
// run durations are reported.
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%d milliseconds", d.Milliseconds())
}

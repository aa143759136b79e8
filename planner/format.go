// Package planner holds the pure view-model computations behind the study
// planner: record normalization, task ordering, calendar aggregation, the
// session timer, and suggestion generation. Nothing in this package performs
// I/O; callers feed it records and a clock and render what comes back.
package planner

import "fmt"

// FormatElapsed renders elapsed seconds as H:MM:SS, or M:SS when under an
// hour. Negative inputs are clamped to zero.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

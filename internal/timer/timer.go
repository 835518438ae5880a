// Package timer backs the per-meeting stopwatch shown on each meeting card.
// The ticking itself is view-local (static/js/meeting-timer.js); this package
// owns the display format shared by the initial render and the tests.
package timer

import "fmt"

// FormatElapsed renders an integer seconds counter as zero-padded HH:MM:SS.
// Negative input clamps to zero.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

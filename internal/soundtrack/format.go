package soundtrack

import (
	"fmt"
	"time"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatPosition renders "pos / total" for the status line.
func FormatPosition(pos, total time.Duration) string {
	return formatDuration(pos) + " / " + formatDuration(total)
}

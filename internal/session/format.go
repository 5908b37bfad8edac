package session

import "fmt"

// FormatMMSS renders a countdown as MM:SS. Negative values render as 00:00;
// minutes are not capped at 59.
func FormatMMSS(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

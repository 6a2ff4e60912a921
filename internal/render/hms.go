package render

import "fmt"

// HMS formats whole seconds for display: MM:SS under one hour, otherwise
// H:MM:SS. Minutes and seconds are zero-padded, hours are not.
func HMS(seconds int64) string {
	if seconds < 3600 {
		return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

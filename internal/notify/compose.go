// Package notify implements the daily flight-safety notification pipeline:
// scan accounts flying today, resolve each destination's risk, compose a
// safety message, and email it. One scan-and-send pass runs per day in the
// configured time zone; the same pass can be invoked manually.
package notify

import (
	"fmt"

	"github.com/kahayonz/safeflight/internal/risk"
)

// Compose builds the safety assessment line for a destination. Pure function
// of its inputs: high and unknown warn, medium cautions, low confirms.
func Compose(destination string, level risk.Level) string {
	switch level {
	case risk.LevelHigh:
		return fmt.Sprintf("Warning: it is NOT safe to travel to %s today.", destination)
	case risk.LevelMedium:
		return fmt.Sprintf("Warning: there are some risks traveling to %s today.", destination)
	case risk.LevelLow:
		return fmt.Sprintf("It is safe to travel to %s today.", destination)
	default:
		return fmt.Sprintf("Warning: safety data for %s is unavailable.", destination)
	}
}

// Subject builds the notification email subject.
func Subject(destination string) string {
	return fmt.Sprintf("SafeFlight: Travel Safety Notification for your flight to %s", destination)
}

// Body builds the full notification email body around the composed safety
// message.
func Body(destination, date, safetyMsg string) string {
	return fmt.Sprintf(
		"Hello,\n\nYour flight to %s is scheduled for today (%s).\n\nSafety assessment: %s\n\nSafe travels!\n\n- SafeFlight",
		destination, date, safetyMsg,
	)
}

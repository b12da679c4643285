// Package timeutil provides time formatting utilities for CLI output.
package timeutil

import (
	"fmt"
	"time"
)

// LocalTimeFormat is the format used for displaying local times in CLI output.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatRemaining renders d as "3d 0h 30m", "2h 5m", "4m 10s" or "10s".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatExpiry describes a session expiry relative to now, for example
// "Mon Jan 2 15:04:05 2006 (in 2h 5m)". A zero time reads "never".
func FormatExpiry(expiresAt, now time.Time) string {
	if expiresAt.IsZero() {
		return "never"
	}
	local := expiresAt.Local().Format(LocalTimeFormat)
	if !expiresAt.After(now) {
		return local + " (expired)"
	}
	return fmt.Sprintf("%s (in %s)", local, FormatRemaining(expiresAt.Sub(now)))
}

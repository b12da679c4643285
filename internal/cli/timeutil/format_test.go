package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0s"},
		{-time.Minute, "0s"},
		{10 * time.Second, "10s"},
		{4*time.Minute + 10*time.Second, "4m 10s"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
		{72*time.Hour + 30*time.Minute, "3d 0h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatRemaining(tt.input); got != tt.expected {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if got := FormatExpiry(time.Time{}, now); got != "never" {
		t.Errorf("FormatExpiry(zero) = %q, want never", got)
	}

	got := FormatExpiry(now.Add(2*time.Hour+5*time.Minute), now)
	if !strings.HasSuffix(got, "(in 2h 5m)") {
		t.Errorf("FormatExpiry(future) = %q, want suffix (in 2h 5m)", got)
	}

	got = FormatExpiry(now.Add(-time.Minute), now)
	if !strings.HasSuffix(got, "(expired)") {
		t.Errorf("FormatExpiry(past) = %q, want suffix (expired)", got)
	}
}

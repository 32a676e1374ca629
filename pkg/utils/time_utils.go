package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClockMinutes converts "HH:MM" (24-hour, "H:MM" accepted) to minutes
// since midnight.
func ParseClockMinutes(clock string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value out of range %q", clock)
	}
	return hour*60 + minute, nil
}

func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

// ParseDurationMinutes accepts the duration notations used across block
// payloads: "2h", "1.5h", "45m", "90min", or a bare number meaning hours.
// Unparseable input falls back to one hour.
func ParseDurationMinutes(duration string) int {
	s := strings.ToLower(strings.TrimSpace(duration))
	if s == "" {
		return 60
	}

	switch {
	case strings.HasSuffix(s, "h"):
		hours, err := strconv.ParseFloat(strings.TrimSuffix(s, "h"), 64)
		if err != nil {
			return 60
		}
		return int(hours * 60)
	case strings.HasSuffix(s, "min"):
		minutes, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "min")))
		if err != nil {
			return 60
		}
		return minutes
	case strings.HasSuffix(s, "m"):
		minutes, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "m")))
		if err != nil {
			return 60
		}
		return minutes
	default:
		hours, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 60
		}
		return int(hours * 60)
	}
}

// FormatDurationMinutes renders minutes back into the short notation used in
// responses: "45m", "1h", "1.5h", "8h".
func FormatDurationMinutes(minutes int) string {
	if minutes <= 0 {
		minutes = 60
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	hours := float64(minutes) / 60.0
	return strconv.FormatFloat(hours, 'f', -1, 64) + "h"
}

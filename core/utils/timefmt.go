package utils

import (
	"fmt"
	"time"

	"syndic-api/core/constants"
)

// NormalizeClock accepts HH:MM or HH:MM:SS and returns the minute-precision
// HH:MM form exchanged at the API boundary.
func NormalizeClock(s string) (string, error) {
	if t, err := time.Parse(constants.TimeFormat, s); err == nil {
		return t.Format(constants.TimeFormat), nil
	}
	if t, err := time.Parse(constants.TimeFormatSeconds, s); err == nil {
		return t.Format(constants.TimeFormat), nil
	}
	return "", fmt.Errorf("invalid time %q, expected HH:MM", s)
}

// ClockToMinutes converts a normalized HH:MM string to minutes since midnight.
func ClockToMinutes(s string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate validates a YYYY-MM-DD calendar date. Dates are timezone-naive.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Today returns the current local calendar date truncated to midnight,
// matching the precision of ParseDate.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

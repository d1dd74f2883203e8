package teesheet

import (
	"fmt"
	"strconv"
	"time"
)

const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"

	minutesPerDay = 24 * 60
)

// Clock is a time of day as minutes since midnight, in [0, 1440).
type Clock int

// ParseClock parses a strict 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidConfiguration, s)
	}

	h, err := parseTwoDigits(s[:2])
	if err != nil || h > 23 {
		return 0, fmt.Errorf("%w: hour out of range in %q", ErrInvalidConfiguration, s)
	}
	m, err := parseTwoDigits(s[3:])
	if err != nil || m > 59 {
		return 0, fmt.Errorf("%w: minute out of range in %q", ErrInvalidConfiguration, s)
	}

	return Clock(h*60 + m), nil
}

// parseTwoDigits rejects signs and spaces that strconv.Atoi would accept.
func parseTwoDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Valid reports whether c lies within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q must be YYYY-MM-DD", ErrInvalidDate, s)
	}
	return d, nil
}

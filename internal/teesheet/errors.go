package teesheet

import "errors"

var (
	// ErrInvalidConfiguration is returned for malformed times or
	// non-positive interval, capacity or price bounds.
	ErrInvalidConfiguration = errors.New("invalid course configuration")

	// ErrInvalidDate is returned when the requested date is missing or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

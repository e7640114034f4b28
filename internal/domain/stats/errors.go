package stats

import "errors"

var (
	// ErrInvalidRange is returned when end precedes start. The range is never
	// silently swapped.
	ErrInvalidRange = errors.New("invalid date range: end is before start")
)

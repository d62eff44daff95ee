// Package domain defines domain-level errors for the chart feature.
package domain

import "errors"

// Domain errors for chart resolution.
// Only ErrInvalidInput is ever returned to chart callers; the calendar-related errors are
// recovered inside the calendar adapter and surface as a low-confidence chart instead.
var (
	// ErrInvalidInput indicates a malformed date, an hour outside [0,23] or an unusable location.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCalendarUnavailable indicates that no calendar layer beyond arithmetic could be resolved.
	ErrCalendarUnavailable = errors.New("calendar unavailable")
)

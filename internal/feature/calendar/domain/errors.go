// Package domain defines domain-level errors for the calendar feature.
package domain

import "errors"

// Calendar errors. None of these leave the calendar adapter's Lookup; they drive the
// fall-through from one layer to the next and are reported through logs and metrics.
var (
	// ErrNotFound indicates that a source has no entry for the requested date.
	ErrNotFound = errors.New("calendar day not found")

	// ErrProviderTimeout indicates that the lunar calendar provider did not answer in time.
	ErrProviderTimeout = errors.New("lunar provider timeout")

	// ErrProviderError indicates any other provider failure (transport, status code, payload).
	ErrProviderError = errors.New("lunar provider error")

	// ErrOutOfRange indicates a date outside the range supported by the local almanac.
	ErrOutOfRange = errors.New("date outside supported almanac range")
)

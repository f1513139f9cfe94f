package stats

import "errors"

var (
	// ErrAccessDenied is returned when a non-admin requests the dashboard stats.
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("stats service: internal error")
)

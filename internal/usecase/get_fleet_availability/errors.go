package get_fleet_availability

import "errors"

var (
	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("get_fleet_availability: internal error")
)

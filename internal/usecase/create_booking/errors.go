package create_booking

import "errors"

var (
	// ErrUserNotFound is returned when the booking user does not exist.
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrCarNotFound is returned when the requested car does not exist.
	ErrCarNotFound = errors.New("create_booking: car not found")

	// ErrCarUnderMaintenance is returned when the car is withdrawn from the fleet.
	ErrCarUnderMaintenance = errors.New("create_booking: car is under maintenance")

	// ErrCarNotAvailable is returned when another booking blocks the requested period.
	ErrCarNotAvailable = errors.New("create_booking: car is not available for the selected dates")

	// ErrInvalidDate is returned when the pickup date lies in the past.
	ErrInvalidDate = errors.New("create_booking: pickup date must not be in the past")

	// ErrInvalidPeriod is returned when the rental period is shorter than one day.
	ErrInvalidPeriod = errors.New("create_booking: return date must be after pickup date")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("create_booking: internal error")
)

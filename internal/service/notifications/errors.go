package notifications

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when a non-admin calls a notification endpoint.
	ErrAccessDenied = errors.New("access denied")

	// ErrNoNotification is returned when the booking never raised an admin notification.
	ErrNoNotification = errors.New("booking has no admin notification to mark as read")

	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("notifications service: internal error")
)

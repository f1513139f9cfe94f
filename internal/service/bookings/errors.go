package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCarNotFound is returned when the referenced car does not exist.
	ErrCarNotFound = errors.New("car not found")

	// ErrAccessDenied is returned when the requester may not act on this booking.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned for malformed input (negative refund, bad status value).
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTerminalStatus is returned on any mutation attempt against a terminal booking.
	ErrTerminalStatus = errors.New("booking is in a terminal status")

	// ErrNotAwaitingPayment is returned when a payment attempt targets a booking
	// that is not pending payment.
	ErrNotAwaitingPayment = errors.New("only pending-payment bookings can process payment retries")

	// ErrPaymentWindowExpired is returned when the payment window elapsed before
	// the payment attempt; the booking is expired as a side effect.
	ErrPaymentWindowExpired = errors.New("payment window has expired for this booking")

	// ErrPaymentAlreadyCompleted is returned when payment already succeeded.
	ErrPaymentAlreadyCompleted = errors.New("payment has already been completed for this booking")

	// ErrInvalidTransition is returned when the target status is not reachable
	// from the current one.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConfirmRequiresPayment is returned when confirming an unpaid booking.
	ErrConfirmRequiresPayment = errors.New("a booking cannot be confirmed before successful payment")

	// ErrExpirePaidBooking is returned when expiring a booking that was paid.
	ErrExpirePaidBooking = errors.New("a paid booking cannot be marked as expired")

	// ErrCannotCancel is returned when the booking is not cancellable.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancelAfterPickup is returned when a customer cancels on or after the
	// pickup date.
	ErrCancelAfterPickup = errors.New("customers may only cancel before the rental start date")

	// ErrCustomerCancelActive is returned when a customer tries to cancel an
	// active rental; only an admin may.
	ErrCustomerCancelActive = errors.New("active bookings can only be cancelled by an admin")

	// ErrNotEditable is returned when customer-editable fields are changed in a
	// non-editable status.
	ErrNotEditable = errors.New("booking details can no longer be modified")

	// ErrNoNotification is returned when marking a notification read on a
	// booking that never raised one.
	ErrNoNotification = errors.New("booking has no admin notification to mark as read")

	// ErrIntegrity signals a persisted booking with missing required relations.
	// Surfaced as a conflict with a support-contact message, not a crash.
	ErrIntegrity = errors.New("booking record is incomplete, please contact support")

	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("bookings service: internal error")
)

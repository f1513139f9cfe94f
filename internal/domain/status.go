package domain

import "fmt"

// BookingStatus is the lifecycle state of a booking.
//
// The legacy values still occur in stored rows written by earlier releases.
// They are readable and normalize onto the canonical set, but the engine
// never produces them for new bookings.
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	StatusConfirmed      BookingStatus = "CONFIRMED"
	StatusActive         BookingStatus = "ACTIVE"
	StatusCompleted      BookingStatus = "COMPLETED"
	StatusCancelled      BookingStatus = "CANCELLED"
	StatusExpired        BookingStatus = "EXPIRED"

	// Legacy values, read-only.
	StatusLegacyPending       BookingStatus = "PENDING"
	StatusLegacyAdminNotified BookingStatus = "ADMIN_NOTIFIED"
	StatusLegacyRejected      BookingStatus = "REJECTED"
)

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"

	// Legacy value, equivalent to PAID.
	PaymentLegacySimulatedPaid PaymentStatus = "SIMULATED_PAID"
)

// Normalize folds legacy aliases onto their canonical value.
// PENDING rows behave exactly like PENDING_PAYMENT; ADMIN_NOTIFIED keeps its
// own identity because it carries distinct transition rules.
func (s BookingStatus) Normalize() BookingStatus {
	if s == StatusLegacyPending {
		return StatusPendingPayment
	}
	return s
}

// IsTerminal reports whether the status is absorbing.
func (s BookingStatus) IsTerminal() bool {
	switch s.Normalize() {
	case StatusCompleted, StatusCancelled, StatusExpired, StatusLegacyRejected:
		return true
	}
	return false
}

// IsAwaitingPayment reports whether the booking may still accept a payment attempt.
func (s BookingStatus) IsAwaitingPayment() bool {
	return s.Normalize() == StatusPendingPayment
}

// IsHardBlocking reports whether the status blocks a car's availability
// regardless of payment state.
func (s BookingStatus) IsHardBlocking() bool {
	switch s.Normalize() {
	case StatusConfirmed, StatusActive, StatusLegacyAdminNotified:
		return true
	}
	return false
}

// IsPaid reports whether payment has been settled.
func (p PaymentStatus) IsPaid() bool {
	return p == PaymentPaid || p == PaymentLegacySimulatedPaid
}

// IsRetryable reports whether another payment attempt is allowed.
func (p PaymentStatus) IsRetryable() bool {
	return p == PaymentUnpaid || p == PaymentFailed
}

// adminTransitions maps each non-terminal status to the targets an admin may
// move it to. Keys are normalized. REJECTED appears in no target list: it is
// never produced, only read from legacy rows.
var adminTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingPayment:      {StatusConfirmed, StatusCancelled, StatusExpired},
	StatusLegacyAdminNotified: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:           {StatusActive, StatusCompleted, StatusCancelled},
	StatusActive:              {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an admin transition from -> to is allowed.
// The source is normalized first so legacy rows follow the same rules.
func CanTransition(from, to BookingStatus) bool {
	for _, t := range adminTransitions[from.Normalize()] {
		if t == to {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
		StatusLegacyPending, StatusLegacyAdminNotified, StatusLegacyRejected:
		return s, nil
	}
	return "", fmt.Errorf("unknown booking status %q", raw)
}

package domain

import "time"

// Booking represents a vehicle rental reservation.
type Booking struct {
	ID     int64
	UserID int64
	CarID  int64

	// Rental period: half-open [PickupDate, ReturnDate), dates only.
	PickupDate time.Time
	ReturnDate time.Time

	PickupLocation  string
	ReturnLocation  string
	SpecialRequests *string

	// Pricing is frozen from the car's daily rate at creation time.
	DailyPrice float64
	TotalPrice float64

	BookingStatus BookingStatus
	PaymentStatus PaymentStatus

	PaymentMethod      *string
	PaymentReference   *string
	PaymentSimulatedAt *time.Time
	// PaymentExpiresAt is the soft-lock deadline. Only meaningful while the
	// booking is awaiting payment.
	PaymentExpiresAt *time.Time

	AdminNotifiedAt         *time.Time
	AdminNotificationRead   bool
	AdminNotificationReadAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Days returns the rental length in days.
func (b *Booking) Days() int64 {
	if b.ReturnDate.IsZero() || b.PickupDate.IsZero() {
		return 0
	}
	return int64(b.ReturnDate.Sub(b.PickupDate).Hours() / 24)
}

// RecalculateTotalPrice keeps totalPrice = days * dailyPrice after any date change.
func (b *Booking) RecalculateTotalPrice() {
	b.TotalPrice = float64(b.Days()) * b.DailyPrice
}

// CanBeCancelled reports whether the booking is in a cancellable state.
func (b *Booking) CanBeCancelled() bool {
	return !b.BookingStatus.IsTerminal()
}

// IsCustomerEditable reports whether the owning customer may still change
// return location or special requests.
func (b *Booking) IsCustomerEditable() bool {
	switch b.BookingStatus.Normalize() {
	case StatusPendingPayment, StatusConfirmed:
		return true
	}
	return false
}

// HasNotification reports whether an admin notification was ever raised.
func (b *Booking) HasNotification() bool {
	return b.AdminNotifiedAt != nil
}

// HasUnreadNotification reports whether an admin notification is pending acknowledgement.
func (b *Booking) HasUnreadNotification() bool {
	return b.AdminNotifiedAt != nil && !b.AdminNotificationRead
}

// MarkNotificationRead acknowledges a pending notification. Idempotent; the
// first read timestamp is preserved.
func (b *Booking) MarkNotificationRead(at time.Time) {
	if b.AdminNotificationRead {
		return
	}
	b.AdminNotificationRead = true
	if b.AdminNotificationReadAt == nil {
		t := at
		b.AdminNotificationReadAt = &t
	}
}

// RaiseNotification stamps a fresh unread admin notification.
func (b *Booking) RaiseNotification(at time.Time) {
	t := at
	b.AdminNotifiedAt = &t
	b.AdminNotificationRead = false
	b.AdminNotificationReadAt = nil
}

// PaymentWindowExpired reports whether the soft-lock deadline has elapsed.
// Only bookings still awaiting payment can expire.
func (b *Booking) PaymentWindowExpired(now time.Time) bool {
	if !b.BookingStatus.IsAwaitingPayment() {
		return false
	}
	if b.PaymentExpiresAt == nil {
		return false
	}
	return !b.PaymentExpiresAt.After(now)
}

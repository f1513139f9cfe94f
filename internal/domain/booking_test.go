package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBooking_DaysAndTotalPrice(t *testing.T) {
	b := &Booking{
		PickupDate: date(2025, 6, 1),
		ReturnDate: date(2025, 6, 5),
		DailyPrice: 3000,
	}
	b.RecalculateTotalPrice()

	assert.Equal(t, int64(4), b.Days())
	assert.Equal(t, 12000.0, b.TotalPrice)

	// Price follows date changes.
	b.ReturnDate = date(2025, 6, 3)
	b.RecalculateTotalPrice()
	assert.Equal(t, 6000.0, b.TotalPrice)
}

func TestBooking_PaymentWindowExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(15 * time.Minute)

	b := &Booking{
		BookingStatus:    StatusPendingPayment,
		PaymentExpiresAt: &deadline,
	}

	assert.False(t, b.PaymentWindowExpired(now))
	assert.False(t, b.PaymentWindowExpired(deadline.Add(-time.Second)))
	assert.True(t, b.PaymentWindowExpired(deadline))
	assert.True(t, b.PaymentWindowExpired(deadline.Add(time.Hour)))

	// Confirmed bookings are no longer subject to the window.
	b.BookingStatus = StatusConfirmed
	assert.False(t, b.PaymentWindowExpired(deadline.Add(time.Hour)))

	// A nil deadline never expires.
	b.BookingStatus = StatusPendingPayment
	b.PaymentExpiresAt = nil
	assert.False(t, b.PaymentWindowExpired(now))
}

func TestBooking_NotificationLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	b := &Booking{AdminNotificationRead: true}
	assert.False(t, b.HasNotification())
	assert.False(t, b.HasUnreadNotification())

	b.RaiseNotification(now)
	assert.True(t, b.HasUnreadNotification())
	assert.Equal(t, now, *b.AdminNotifiedAt)
	assert.Nil(t, b.AdminNotificationReadAt)

	readAt := now.Add(time.Hour)
	b.MarkNotificationRead(readAt)
	assert.False(t, b.HasUnreadNotification())
	assert.Equal(t, readAt, *b.AdminNotificationReadAt)

	// Marking again keeps the original read timestamp.
	b.MarkNotificationRead(readAt.Add(time.Hour))
	assert.Equal(t, readAt, *b.AdminNotificationReadAt)
}

func TestBooking_CustomerEditableStatuses(t *testing.T) {
	editable := []BookingStatus{StatusPendingPayment, StatusLegacyPending, StatusConfirmed}
	for _, s := range editable {
		b := &Booking{BookingStatus: s}
		assert.True(t, b.IsCustomerEditable(), "status %s", s)
	}

	frozen := []BookingStatus{StatusActive, StatusCompleted, StatusCancelled, StatusExpired, StatusLegacyRejected}
	for _, s := range frozen {
		b := &Booking{BookingStatus: s}
		assert.False(t, b.IsCustomerEditable(), "status %s", s)
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	for _, s := range TerminalStatuses {
		b := &Booking{BookingStatus: s}
		assert.False(t, b.CanBeCancelled(), "status %s", s)
	}
	for _, s := range []BookingStatus{StatusPendingPayment, StatusConfirmed, StatusActive} {
		b := &Booking{BookingStatus: s}
		assert.True(t, b.CanBeCancelled(), "status %s", s)
	}
}

package models

import (
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// NotificationResponse is an admin-facing view of a booking's notification state.
type NotificationResponse struct {
	BookingID     int64   `json:"bookingId"`
	UserID        int64   `json:"userId"`
	CarID         int64   `json:"carId"`
	BookingStatus string  `json:"bookingStatus"`
	PaymentStatus string  `json:"paymentStatus"`
	PickupDate    string  `json:"pickupDate"`
	ReturnDate    string  `json:"returnDate"`
	TotalPrice    float64 `json:"totalPrice"`

	NotifiedAt string  `json:"notifiedAt"`
	Read       bool    `json:"read"`
	ReadAt     *string `json:"readAt,omitempty"`
}

// NotificationListResponse wraps a notification feed with an unread counter.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// FromDomainBooking builds the notification view of a booking. The booking
// must carry a notification timestamp; callers filter beforehand.
func FromDomainBooking(b *domain.Booking) NotificationResponse {
	resp := NotificationResponse{
		BookingID:     b.ID,
		UserID:        b.UserID,
		CarID:         b.CarID,
		BookingStatus: string(b.BookingStatus),
		PaymentStatus: string(b.PaymentStatus),
		PickupDate:    b.PickupDate.Format(domain.DateFormat),
		ReturnDate:    b.ReturnDate.Format(domain.DateFormat),
		TotalPrice:    b.TotalPrice,
		Read:          b.AdminNotificationRead,
	}
	if b.AdminNotifiedAt != nil {
		resp.NotifiedAt = b.AdminNotifiedAt.Format(time.RFC3339)
	}
	if b.AdminNotificationReadAt != nil {
		s := b.AdminNotificationReadAt.Format(time.RFC3339)
		resp.ReadAt = &s
	}
	return resp
}

// FromDomainBookingList converts a notification feed, counting unread entries.
func FromDomainBookingList(bookings []*domain.Booking) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Notifications = append(resp.Notifications, FromDomainBooking(b))
		if b.HasUnreadNotification() {
			resp.UnreadCount++
		}
	}
	return resp
}

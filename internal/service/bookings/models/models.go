package models

import (
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// Requester identifies the authenticated caller. Populated by the API layer
// from the auth context; the engine never parses credentials itself.
type Requester struct {
	UserID  int64
	IsAdmin bool
}

// SimulatePaymentRequest drives the simulated payment flow.
type SimulatePaymentRequest struct {
	Requester     Requester
	PaymentMethod *string
	// Succeeded defaults to true when nil (happy-path simulation).
	Succeeded *bool
}

// UpdateBookingRequest carries the customer-editable fields and, for admins,
// an optional status transition.
type UpdateBookingRequest struct {
	Requester       Requester
	ReturnLocation  *string
	SpecialRequests *string
	BookingStatus   *string
	RefundAmount    *float64
}

// CancelBookingRequest cancels a booking with a reason.
type CancelBookingRequest struct {
	Requester Requester
	Reason    string
}

// BookingResponse is the engine's view of a booking, returned to the API layer.
type BookingResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	CarID  int64 `json:"carId"`

	PickupDate string `json:"pickupDate"` // "2025-06-01"
	ReturnDate string `json:"returnDate"`
	Days       int64  `json:"days"`

	PickupLocation  string  `json:"pickupLocation"`
	ReturnLocation  string  `json:"returnLocation"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	DailyPrice float64 `json:"dailyPrice"`
	TotalPrice float64 `json:"totalPrice"`

	BookingStatus string `json:"bookingStatus"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentMethod      *string `json:"paymentMethod,omitempty"`
	PaymentReference   *string `json:"paymentReference,omitempty"`
	PaymentSimulatedAt *string `json:"paymentSimulatedAt,omitempty"` // ISO 8601
	PaymentExpiresAt   *string `json:"paymentExpiresAt,omitempty"`

	AdminNotifiedAt         *string `json:"adminNotifiedAt,omitempty"`
	AdminNotificationRead   bool    `json:"adminNotificationRead"`
	AdminNotificationReadAt *string `json:"adminNotificationReadAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts the domain entity into the response DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                      b.ID,
		UserID:                  b.UserID,
		CarID:                   b.CarID,
		PickupDate:              b.PickupDate.Format(domain.DateFormat),
		ReturnDate:              b.ReturnDate.Format(domain.DateFormat),
		Days:                    b.Days(),
		PickupLocation:          b.PickupLocation,
		ReturnLocation:          b.ReturnLocation,
		SpecialRequests:         b.SpecialRequests,
		DailyPrice:              b.DailyPrice,
		TotalPrice:              b.TotalPrice,
		BookingStatus:           string(b.BookingStatus),
		PaymentStatus:           string(b.PaymentStatus),
		PaymentMethod:           b.PaymentMethod,
		PaymentReference:        b.PaymentReference,
		PaymentSimulatedAt:      formatTime(b.PaymentSimulatedAt),
		PaymentExpiresAt:        formatTime(b.PaymentExpiresAt),
		AdminNotifiedAt:         formatTime(b.AdminNotifiedAt),
		AdminNotificationRead:   b.AdminNotificationRead,
		AdminNotificationReadAt: formatTime(b.AdminNotificationReadAt),
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}
}

// FromDomainBookingList converts a list of domain entities.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

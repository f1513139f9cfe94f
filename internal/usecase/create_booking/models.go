package create_booking

import (
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// Request carries a new booking order.
type Request struct {
	UserID          int64
	CarID           int64
	PickupDate      time.Time // date only
	ReturnDate      time.Time // date only, exclusive
	PickupLocation  string
	ReturnLocation  string
	SpecialRequests *string
}

// Response is the created booking.
type Response struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	CarID  int64 `json:"carId"`

	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
	Days       int64  `json:"days"`

	PickupLocation  string  `json:"pickupLocation"`
	ReturnLocation  string  `json:"returnLocation"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	DailyPrice float64 `json:"dailyPrice"`
	TotalPrice float64 `json:"totalPrice"`

	BookingStatus string `json:"bookingStatus"`
	PaymentStatus string `json:"paymentStatus"`

	// PaymentExpiresAt is the deadline for completing payment before the
	// soft lock is released.
	PaymentExpiresAt string `json:"paymentExpiresAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func fromDomain(b *domain.Booking) *Response {
	resp := &Response{
		ID:              b.ID,
		UserID:          b.UserID,
		CarID:           b.CarID,
		PickupDate:      b.PickupDate.Format(domain.DateFormat),
		ReturnDate:      b.ReturnDate.Format(domain.DateFormat),
		Days:            b.Days(),
		PickupLocation:  b.PickupLocation,
		ReturnLocation:  b.ReturnLocation,
		SpecialRequests: b.SpecialRequests,
		DailyPrice:      b.DailyPrice,
		TotalPrice:      b.TotalPrice,
		BookingStatus:   string(b.BookingStatus),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.PaymentExpiresAt != nil {
		resp.PaymentExpiresAt = b.PaymentExpiresAt.Format(time.RFC3339)
	}
	return resp
}

package create_booking

import (
	"strings"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
	createBooking "github.com/garizetu/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CarID           int64   `json:"carId"`
	PickupDate      string  `json:"pickupDate"` // "2025-06-20"
	ReturnDate      string  `json:"returnDate"`
	PickupLocation  string  `json:"pickupLocation"`
	ReturnLocation  string  `json:"returnLocation,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
// Return location falls back to the pickup location when omitted.
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	pickupDate, err := time.Parse(domain.DateFormat, r.PickupDate)
	if err != nil {
		return nil, err
	}
	returnDate, err := time.Parse(domain.DateFormat, r.ReturnDate)
	if err != nil {
		return nil, err
	}

	returnLocation := strings.TrimSpace(r.ReturnLocation)
	if returnLocation == "" {
		returnLocation = r.PickupLocation
	}

	return &createBooking.Request{
		UserID:          userID,
		CarID:           r.CarID,
		PickupDate:      pickupDate,
		ReturnDate:      returnDate,
		PickupLocation:  r.PickupLocation,
		ReturnLocation:  returnLocation,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

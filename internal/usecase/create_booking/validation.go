package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.CarID <= 0 {
		return fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}
	if req.PickupDate.IsZero() || req.ReturnDate.IsZero() {
		return fmt.Errorf("%w: pickup and return dates are required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.PickupLocation) == "" {
		return fmt.Errorf("%w: pickup location is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ReturnLocation) == "" {
		return fmt.Errorf("%w: return location is required", ErrInvalidInput)
	}
	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsChars {
		return fmt.Errorf("%w: special requests must not exceed %d characters",
			ErrInvalidInput, domain.MaxSpecialRequestsChars)
	}

	if isDateInPast(req.PickupDate, now) {
		return ErrInvalidDate
	}
	// The period is half-open, same-day return means zero rental days.
	if !req.ReturnDate.After(req.PickupDate) {
		return ErrInvalidPeriod
	}

	return nil
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

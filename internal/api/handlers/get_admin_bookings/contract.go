package get_admin_bookings

import (
	"context"

	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetAll(ctx context.Context, requester models.Requester, status *string) (*models.BookingListResponse, error)
	GetCarBookings(ctx context.Context, carID int64, requester models.Requester) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

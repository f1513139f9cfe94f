package simulate_payment

import (
	"context"

	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	SimulatePayment(ctx context.Context, id int64, req *models.SimulatePaymentRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

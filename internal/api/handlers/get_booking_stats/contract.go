package get_booking_stats

import (
	"context"

	statsService "github.com/garizetu/booking-service/internal/service/stats"
)

type StatsService interface {
	Get(ctx context.Context, isAdmin bool) (*statsService.BookingStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_fleet_availability

import (
	"context"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// CarRepository lists the fleet with operational statuses.
type CarRepository interface {
	ListIDs(ctx context.Context) ([]*domain.Car, error)
}

// BookingRepository resolves all blocking bookings for a set of cars in one query.
type BookingRepository interface {
	FindBlockingForCars(ctx context.Context, carIDs []int64, asOf time.Time) ([]*domain.Booking, error)
}

// TimeProvider supplies the current instant (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package create_booking

import (
	"context"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// BookingRepository is the persistence surface for new bookings. FindConflicting
// must lock the rows it returns when running inside a transaction.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	FindConflicting(ctx context.Context, carID int64, pickupDate, returnDate time.Time, asOf time.Time) ([]*domain.Booking, error)
}

// CarRepository resolves the vehicle and its frozen daily rate.
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

// UserRepository verifies the booking user exists.
type UserRepository interface {
	Exists(ctx context.Context, id int64) error
}

// ExpirySweeper releases stale soft locks before the availability check.
type ExpirySweeper interface {
	ExpirePendingPayment(ctx context.Context) (int, error)
}

// TransactionManager runs the conflict check and the insert as one
// serializable unit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current instant (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled logging surface.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package bookings

import (
	"context"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// BookingRepository is the persistence surface of the lifecycle engine.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAll(ctx context.Context) ([]*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	GetByCarID(ctx context.Context, carID int64) ([]*domain.Booking, error)
	GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	SaveAll(ctx context.Context, bookings []*domain.Booking) error
	FindExpiredPendingPayment(ctx context.Context, asOf time.Time) ([]*domain.Booking, error)
}

// CarRepository is the vehicle collaborator. Status writes are commands issued
// by the engine as side effects of booking transitions.
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	UpdateStatus(ctx context.Context, id int64, status domain.CarStatus) error
}

// TransactionManager runs a booking mutation and its car side effect as one
// atomic unit.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

package notifications

import (
	"context"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// BookingRepository is the subset of booking persistence the tracker needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UnreadNotifications(ctx context.Context) ([]*domain.Booking, error)
	AllNotifications(ctx context.Context) ([]*domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
}

// TransactionManager wraps the read-modify-write of the read flag.
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

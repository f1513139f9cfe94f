package stats

import (
	"context"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// BookingRepository is the counting surface of the stats aggregator.
type BookingRepository interface {
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	CountTotal(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
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

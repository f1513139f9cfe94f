package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// Service aggregates booking counts for the admin dashboard.
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the stats aggregator.
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// BookingStats is the dashboard counter set. Legacy stored statuses are folded
// into the canonical buckets: PENDING and ADMIN_NOTIFIED count as pending
// payment (pre-confirmation), REJECTED counts as cancelled.
type BookingStats struct {
	Total          int64 `json:"total"`
	PendingPayment int64 `json:"pendingPayment"`
	Confirmed      int64 `json:"confirmed"`
	Active         int64 `json:"active"`
	Completed      int64 `json:"completed"`
	Cancelled      int64 `json:"cancelled"`
	Expired        int64 `json:"expired"`

	// Overdue counts active rentals whose return date has passed.
	Overdue int64 `json:"overdue"`
}

// statusBuckets maps each dashboard bucket to the stored statuses it folds.
var statusBuckets = []struct {
	statuses []domain.BookingStatus
	assign   func(*BookingStats, int64)
}{
	{
		statuses: []domain.BookingStatus{domain.StatusPendingPayment, domain.StatusLegacyPending, domain.StatusLegacyAdminNotified},
		assign:   func(s *BookingStats, n int64) { s.PendingPayment += n },
	},
	{
		statuses: []domain.BookingStatus{domain.StatusConfirmed},
		assign:   func(s *BookingStats, n int64) { s.Confirmed += n },
	},
	{
		statuses: []domain.BookingStatus{domain.StatusActive},
		assign:   func(s *BookingStats, n int64) { s.Active += n },
	},
	{
		statuses: []domain.BookingStatus{domain.StatusCompleted},
		assign:   func(s *BookingStats, n int64) { s.Completed += n },
	},
	{
		statuses: []domain.BookingStatus{domain.StatusCancelled, domain.StatusLegacyRejected},
		assign:   func(s *BookingStats, n int64) { s.Cancelled += n },
	},
	{
		statuses: []domain.BookingStatus{domain.StatusExpired},
		assign:   func(s *BookingStats, n int64) { s.Expired += n },
	},
}

// Get computes the dashboard counters. Admin only.
func (s *Service) Get(ctx context.Context, isAdmin bool) (*BookingStats, error) {
	if !isAdmin {
		return nil, ErrAccessDenied
	}

	stats := &BookingStats{}

	total, err := s.bookingRepo.CountTotal(ctx)
	if err != nil {
		s.logger.Error("Get: total count failed: %v", err)
		return nil, fmt.Errorf("%w: Get - total count: %v", ErrInternal, err)
	}
	stats.Total = total

	for _, bucket := range statusBuckets {
		for _, status := range bucket.statuses {
			n, err := s.bookingRepo.CountByStatus(ctx, status)
			if err != nil {
				s.logger.Error("Get: count for status %s failed: %v", status, err)
				return nil, fmt.Errorf("%w: Get - count %s: %v", ErrInternal, status, err)
			}
			bucket.assign(stats, n)
		}
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	overdue, err := s.bookingRepo.CountOverdue(ctx, today)
	if err != nil {
		s.logger.Error("Get: overdue count failed: %v", err)
		return nil, fmt.Errorf("%w: Get - overdue count: %v", ErrInternal, err)
	}
	stats.Overdue = overdue

	return stats, nil
}

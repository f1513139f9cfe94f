package notifications

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/garizetu/booking-service/internal/infra/storage/booking"
	"github.com/garizetu/booking-service/internal/service/notifications/models"
)

// Service is the admin notification tracker. Notifications are raised by the
// booking lifecycle engine on confirmation; this service only reads the feed
// and acknowledges entries.
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the notification tracker.
func NewService(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Unread returns all unacknowledged notifications, newest first.
func (s *Service) Unread(ctx context.Context, isAdmin bool) (*models.NotificationListResponse, error) {
	if !isAdmin {
		return nil, ErrAccessDenied
	}

	list, err := s.bookingRepo.UnreadNotifications(ctx)
	if err != nil {
		s.logger.Error("Unread: repository error: %v", err)
		return nil, fmt.Errorf("%w: Unread - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(list), nil
}

// All returns the full notification feed, read entries included.
func (s *Service) All(ctx context.Context, isAdmin bool) (*models.NotificationListResponse, error) {
	if !isAdmin {
		return nil, ErrAccessDenied
	}

	list, err := s.bookingRepo.AllNotifications(ctx)
	if err != nil {
		s.logger.Error("All: repository error: %v", err)
		return nil, fmt.Errorf("%w: All - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(list), nil
}

// MarkRead acknowledges a booking's admin notification. Acknowledging an
// already-read notification is a no-op that still succeeds; a booking that
// never raised one is a conflict.
func (s *Service) MarkRead(ctx context.Context, id int64, isAdmin bool) (*models.NotificationResponse, error) {
	if !isAdmin {
		return nil, ErrAccessDenied
	}

	var result models.NotificationResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
		}

		if !b.HasNotification() {
			return ErrNoNotification
		}

		if b.HasUnreadNotification() {
			b.MarkNotificationRead(s.timeProvider.Now())
			if err := s.bookingRepo.Save(txCtx, b); err != nil {
				return fmt.Errorf("%w: MarkRead - save booking: %v", ErrInternal, err)
			}
			s.logger.Info("MarkRead: notification for booking id=%d acknowledged", id)
		}

		result = models.FromDomainBooking(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

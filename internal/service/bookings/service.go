package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
	bookingRepo "github.com/garizetu/booking-service/internal/infra/storage/booking"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

// Service is the booking lifecycle engine. It owns the state machine from
// payment simulation through admin transitions, cancellation and expiry.
// Creation lives in its own use case (internal/usecase/create_booking).
type Service struct {
	bookingRepo  BookingRepository
	carRepo      CarRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the booking lifecycle service.
func NewService(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ========== READS ==========

// GetByID fetches a booking. Customers may only see their own bookings.
func (s *Service) GetByID(ctx context.Context, id int64, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requester.UserID)

	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkIntegrity(b); err != nil {
		s.logger.Error("GetByID: booking id=%d failed integrity check", id)
		return nil, err
	}
	if err := assertOwnerOrAdmin(b, requester); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requester.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(b), nil
}

// GetAll returns every booking, newest first. Admin only.
func (s *Service) GetAll(ctx context.Context, requester models.Requester, status *string) (*models.BookingListResponse, error) {
	if !requester.IsAdmin {
		return nil, ErrAccessDenied
	}

	if status != nil {
		parsed, err := domain.ParseBookingStatus(*status)
		if err != nil {
			s.logger.Warn("GetAll: invalid status filter %q", *status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		list, err := s.bookingRepo.GetByStatus(ctx, parsed)
		if err != nil {
			s.logger.Error("GetAll: repository error: %v", err)
			return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
		}
		return models.FromDomainBookingList(list), nil
	}

	list, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(list), nil
}

// GetUserBookings returns the requester's own booking history.
func (s *Service) GetUserBookings(ctx context.Context, requester models.Requester) (*models.BookingListResponse, error) {
	list, err := s.bookingRepo.GetByUserID(ctx, requester.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", requester.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(list), nil
}

// GetCarBookings returns all bookings for a car. Admin only.
func (s *Service) GetCarBookings(ctx context.Context, carID int64, requester models.Requester) (*models.BookingListResponse, error) {
	if !requester.IsAdmin {
		return nil, ErrAccessDenied
	}

	list, err := s.bookingRepo.GetByCarID(ctx, carID)
	if err != nil {
		s.logger.Error("GetCarBookings: repository error for car=%d: %v", carID, err)
		return nil, fmt.Errorf("%w: GetCarBookings - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBookingList(list), nil
}

// ========== CANCELLATION ==========

// Cancel cancels a booking.
// Customers may cancel their own bookings before the pickup date and never
// while the rental is active; admins may cancel from any non-terminal status.
// A paid booking is refunded and the car is freed, all in one transaction.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, req.Requester.UserID)

	if _, err := s.ExpirePendingPayment(ctx); err != nil {
		return nil, err
	}

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}
		if err := checkIntegrity(b); err != nil {
			return err
		}
		if err := assertOwnerOrAdmin(b, req.Requester); err != nil {
			return err
		}

		if !b.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d not cancellable, status=%s", id, b.BookingStatus)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, b.BookingStatus)
		}

		now := s.timeProvider.Now()
		if !req.Requester.IsAdmin {
			if !b.PickupDate.After(dateOnly(now)) {
				return ErrCancelAfterPickup
			}
			if b.BookingStatus == domain.StatusActive {
				return ErrCustomerCancelActive
			}
		}

		b.BookingStatus = domain.StatusCancelled
		if err := s.carRepo.UpdateStatus(txCtx, b.CarID, domain.CarAvailable); err != nil {
			return fmt.Errorf("%w: Cancel - free car: %v", ErrInternal, err)
		}
		if b.PaymentStatus.IsPaid() {
			b.PaymentStatus = domain.PaymentRefunded
		}
		b.MarkNotificationRead(now)

		if err := s.bookingRepo.Save(txCtx, b); err != nil {
			return fmt.Errorf("%w: Cancel - save booking: %v", ErrInternal, err)
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn("Cancel: booking id=%d cancelled, reason: %s", id, req.Reason)
	return models.FromDomainBooking(result), nil
}

// ========== EXPIRY SWEEP ==========

// ExpirePendingPayment converts stale pending-payment bookings into EXPIRED,
// frees their cars and consumes pending notifications. Idempotent: the query
// predicate itself excludes already-expired rows, so repeated or concurrent
// sweeps never double-process. Returns the number of bookings expired.
func (s *Service) ExpirePendingPayment(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	var count int
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		expired, err := s.bookingRepo.FindExpiredPendingPayment(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: ExpirePendingPayment - find expired: %v", ErrInternal, err)
		}
		if len(expired) == 0 {
			return nil
		}

		for _, b := range expired {
			if err := s.expireBooking(txCtx, b, now); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.SaveAll(txCtx, expired); err != nil {
			return fmt.Errorf("%w: ExpirePendingPayment - save batch: %v", ErrInternal, err)
		}

		count = len(expired)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.logger.Info("ExpirePendingPayment: expired %d pending-payment booking(s)", count)
	}
	return count, nil
}

// expireBooking moves a booking to EXPIRED and releases its car. Mutates the
// booking in place; the caller persists.
func (s *Service) expireBooking(ctx context.Context, b *domain.Booking, now time.Time) error {
	b.BookingStatus = domain.StatusExpired
	if err := s.carRepo.UpdateStatus(ctx, b.CarID, domain.CarAvailable); err != nil {
		return fmt.Errorf("%w: expireBooking - free car: %v", ErrInternal, err)
	}
	b.MarkNotificationRead(now)
	s.logger.Warn("Booking id=%d marked EXPIRED: payment window elapsed", b.ID)
	return nil
}

// ========== HELPERS ==========

func (s *Service) loadBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: loadBooking - repository error: %v", ErrInternal, err)
	}
	return b, nil
}

// checkIntegrity guards against corrupted rows missing required relations.
func checkIntegrity(b *domain.Booking) error {
	if b.UserID == 0 || b.CarID == 0 || b.BookingStatus == "" {
		return ErrIntegrity
	}
	return nil
}

func assertOwnerOrAdmin(b *domain.Booking, requester models.Requester) error {
	if requester.IsAdmin {
		return nil
	}
	if b.UserID != requester.UserID {
		return ErrAccessDenied
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
	carRepo "github.com/garizetu/booking-service/internal/infra/storage/car"
	userRepo "github.com/garizetu/booking-service/internal/infra/storage/user"
)

// UseCase creates a booking and places a payment-window soft lock on the car.
type UseCase struct {
	bookingRepo   BookingRepository
	carRepo       CarRepository
	userRepo      UserRepository
	sweeper       ExpirySweeper
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	windowMinutes int
}

// NewUseCase creates the booking creation use case. windowMinutes is the
// payment window length; values below the minimum are clamped.
func NewUseCase(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	userRepo UserRepository,
	sweeper ExpirySweeper,
	txManager TransactionManager,
	logger Logger,
	windowMinutes int,
) *UseCase {
	if windowMinutes < domain.MinPaymentWindowMinutes {
		windowMinutes = domain.MinPaymentWindowMinutes
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		carRepo:       carRepo,
		userRepo:      userRepo,
		sweeper:       sweeper,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		windowMinutes: windowMinutes,
	}
}

// Execute creates a pending-payment booking.
// Runs the conflict check and insert in a serializable transaction so two
// orders for the same car and overlapping dates cannot both succeed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, car=%d, pickup=%s, return=%s",
		req.UserID, req.CarID, req.PickupDate.Format(domain.DateFormat), req.ReturnDate.Format(domain.DateFormat))

	now := uc.timeProvider.Now()

	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Release stale soft locks so an abandoned order does not block this one.
	if _, err := uc.sweeper.ExpirePendingPayment(ctx); err != nil {
		uc.logger.Error("CreateBooking: expiry sweep failed: %v", err)
		return nil, fmt.Errorf("%w: expiry sweep: %v", ErrInternal, err)
	}

	if err := uc.userRepo.Exists(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to check user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to check user: %v", ErrInternal, err)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		car, err := uc.carRepo.GetByID(txCtx, req.CarID)
		if err != nil {
			if errors.Is(err, carRepo.ErrCarNotFound) {
				uc.logger.Warn("CreateBooking: car id=%d not found", req.CarID)
				return ErrCarNotFound
			}
			uc.logger.Error("CreateBooking: failed to get car id=%d: %v", req.CarID, err)
			return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
		}

		if car.Status == domain.CarMaintenance {
			uc.logger.Warn("CreateBooking: car id=%d is under maintenance", req.CarID)
			return ErrCarUnderMaintenance
		}

		// Blocking rows are locked FOR UPDATE inside the transaction, so a
		// concurrent order on the same car serializes behind this one.
		conflicts, err := uc.bookingRepo.FindConflicting(txCtx, req.CarID, req.PickupDate, req.ReturnDate, now)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed for car id=%d: %v", req.CarID, err)
			return fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: car id=%d blocked by %d booking(s) in the requested period",
				req.CarID, len(conflicts))
			return ErrCarNotAvailable
		}

		expiresAt := now.Add(time.Duration(uc.windowMinutes) * time.Minute)

		booking := &domain.Booking{
			UserID:          req.UserID,
			CarID:           req.CarID,
			PickupDate:      req.PickupDate,
			ReturnDate:      req.ReturnDate,
			PickupLocation:  req.PickupLocation,
			ReturnLocation:  req.ReturnLocation,
			SpecialRequests: req.SpecialRequests,
			// Price is frozen at order time, later rate changes do not apply.
			DailyPrice:       car.DailyPrice,
			BookingStatus:    domain.StatusPendingPayment,
			PaymentStatus:    domain.PaymentUnpaid,
			PaymentExpiresAt: &expiresAt,
			// No notification raised yet, nothing for an admin to acknowledge.
			AdminNotificationRead: true,
		}
		booking.RecalculateTotalPrice()

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created, payment due by %s",
		result.ID, result.PaymentExpiresAt.Format(time.RFC3339))

	return fromDomain(result), nil
}

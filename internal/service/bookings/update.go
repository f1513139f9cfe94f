package bookings

import (
	"context"
	"fmt"

	"github.com/garizetu/booking-service/internal/domain"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

// Update applies customer-editable field changes and, for admins, a status
// transition. Field edits and the transition with its car side effect commit
// as one unit.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by user=%d", id, req.Requester.UserID)

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

		if req.BookingStatus != nil {
			if err := s.applyAdminTransition(txCtx, b, req); err != nil {
				return err
			}
		}

		if req.ReturnLocation != nil || req.SpecialRequests != nil {
			if err := applyFieldEdits(b, req); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.Save(txCtx, b); err != nil {
			return fmt.Errorf("%w: Update - save booking: %v", ErrInternal, err)
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(result), nil
}

// applyAdminTransition moves the booking to the requested status and performs
// the car side effect and payment/notification bookkeeping for the target.
func (s *Service) applyAdminTransition(ctx context.Context, b *domain.Booking, req *models.UpdateBookingRequest) error {
	if !req.Requester.IsAdmin {
		return ErrAccessDenied
	}

	target, err := domain.ParseBookingStatus(*req.BookingStatus)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if b.BookingStatus.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, b.BookingStatus)
	}
	if !domain.CanTransition(b.BookingStatus, target) {
		s.logger.Warn("Update: rejected transition %s -> %s for booking id=%d", b.BookingStatus, target, b.ID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.BookingStatus, target)
	}
	if target == domain.StatusConfirmed && !b.PaymentStatus.IsPaid() {
		return ErrConfirmRequiresPayment
	}
	if target == domain.StatusExpired && b.PaymentStatus.IsPaid() {
		return ErrExpirePaidBooking
	}
	if req.RefundAmount != nil && *req.RefundAmount < 0 {
		return fmt.Errorf("%w: refund amount must not be negative", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	b.BookingStatus = target

	switch {
	case target == domain.StatusActive:
		if err := s.carRepo.UpdateStatus(ctx, b.CarID, domain.CarRented); err != nil {
			return fmt.Errorf("%w: Update - mark car rented: %v", ErrInternal, err)
		}
	case target.IsTerminal():
		if err := s.carRepo.UpdateStatus(ctx, b.CarID, domain.CarAvailable); err != nil {
			return fmt.Errorf("%w: Update - free car: %v", ErrInternal, err)
		}
	}

	if target == domain.StatusCancelled && b.PaymentStatus.IsPaid() {
		b.PaymentStatus = domain.PaymentRefunded
	}

	if target == domain.StatusConfirmed {
		// The payment deadline is meaningless once confirmed.
		b.PaymentExpiresAt = nil
		b.RaiseNotification(now)
	} else {
		b.MarkNotificationRead(now)
	}

	s.logger.Info("Update: booking id=%d transitioned to %s", b.ID, target)
	return nil
}

// applyFieldEdits updates the customer-editable fields. Admins may edit any
// non-terminal booking; customers only while the booking is still editable.
func applyFieldEdits(b *domain.Booking, req *models.UpdateBookingRequest) error {
	if b.BookingStatus.IsTerminal() {
		return ErrNotEditable
	}
	if !req.Requester.IsAdmin && !b.IsCustomerEditable() {
		return ErrNotEditable
	}

	if req.ReturnLocation != nil {
		b.ReturnLocation = *req.ReturnLocation
	}
	if req.SpecialRequests != nil {
		if len(*req.SpecialRequests) > domain.MaxSpecialRequestsChars {
			return fmt.Errorf("%w: special requests must not exceed %d characters",
				ErrInvalidInput, domain.MaxSpecialRequestsChars)
		}
		b.SpecialRequests = req.SpecialRequests
	}
	return nil
}

package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/garizetu/booking-service/internal/domain"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

// SimulatePayment runs a simulated payment attempt against a pending-payment
// booking. Success confirms the booking and raises an admin notification;
// failure records a FAIL reference and leaves the booking retryable inside
// its original payment window. If the window already elapsed the booking is
// expired, the expiry is committed, and the attempt fails.
func (s *Service) SimulatePayment(ctx context.Context, id int64, req *models.SimulatePaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("SimulatePayment: payment attempt for booking id=%d by user=%d", id, req.Requester.UserID)

	if _, err := s.ExpirePendingPayment(ctx); err != nil {
		return nil, err
	}

	var (
		result        *domain.Booking
		windowExpired bool
	)

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

		if b.BookingStatus.IsTerminal() {
			return fmt.Errorf("%w: %s", ErrTerminalStatus, b.BookingStatus)
		}
		if !b.BookingStatus.IsAwaitingPayment() {
			return ErrNotAwaitingPayment
		}

		now := s.timeProvider.Now()

		// Sweep and attempt may race: expire inline and commit, then fail
		// the attempt after the transaction.
		if b.PaymentWindowExpired(now) {
			if err := s.expireBooking(txCtx, b, now); err != nil {
				return err
			}
			if err := s.bookingRepo.Save(txCtx, b); err != nil {
				return fmt.Errorf("%w: SimulatePayment - save expired booking: %v", ErrInternal, err)
			}
			windowExpired = true
			return nil
		}

		if b.PaymentStatus.IsPaid() {
			return ErrPaymentAlreadyCompleted
		}

		method := normalizePaymentMethod(req.PaymentMethod)
		succeeded := req.Succeeded == nil || *req.Succeeded

		b.PaymentMethod = &method
		t := now
		b.PaymentSimulatedAt = &t

		if succeeded {
			ref := paymentReference(domain.PaymentReferencePrefix, b.ID)
			b.PaymentReference = &ref
			b.PaymentStatus = domain.PaymentPaid
			b.BookingStatus = domain.StatusConfirmed
			b.PaymentExpiresAt = nil
			b.RaiseNotification(now)
			s.logger.Info("SimulatePayment: booking id=%d paid via %s, ref=%s", b.ID, method, ref)
		} else {
			ref := paymentReference(domain.PaymentFailedRefPrefix, b.ID)
			b.PaymentReference = &ref
			b.PaymentStatus = domain.PaymentFailed
			s.logger.Warn("SimulatePayment: booking id=%d payment failed via %s, ref=%s", b.ID, method, ref)
		}

		if err := s.bookingRepo.Save(txCtx, b); err != nil {
			return fmt.Errorf("%w: SimulatePayment - save booking: %v", ErrInternal, err)
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	if windowExpired {
		return nil, ErrPaymentWindowExpired
	}

	return models.FromDomainBooking(result), nil
}

// normalizePaymentMethod canonicalizes a user-supplied method name:
// trimmed, spaces and dashes folded to underscores, uppercased.
// Empty input falls back to the default method.
func normalizePaymentMethod(raw *string) string {
	if raw == nil {
		return domain.DefaultPaymentMethod
	}
	m := strings.TrimSpace(*raw)
	if m == "" {
		return domain.DefaultPaymentMethod
	}
	m = strings.ReplaceAll(m, "-", "_")
	m = strings.ReplaceAll(m, " ", "_")
	return strings.ToUpper(m)
}

func paymentReference(prefix string, bookingID int64) string {
	suffix := strings.ToUpper(uuid.NewString()[:domain.PaymentRefSuffixLength])
	return fmt.Sprintf("%s-%d-%s", prefix, bookingID, suffix)
}

package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	bookingsService "github.com/garizetu/booking-service/internal/service/bookings"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "access denied"
	msgCannotCancel       = "booking cannot be cancelled"
	msgCancelAfterPickup  = "customers may only cancel before the rental start date"
	msgCancelActive       = "active bookings can only be cancelled by an admin"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/%d/cancel - Invalid request body: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	userID, _ := middleware.UserID(r.Context())
	serviceReq := &models.CancelBookingRequest{
		Requester: models.Requester{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())},
		Reason:    req.Reason,
	}

	result, err := h.service.Cancel(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/%d/cancel - Access denied: user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrCancelAfterPickup):
			handlers.RespondError(w, http.StatusConflict, msgCancelAfterPickup)

		case errors.Is(err, bookingsService.ErrCustomerCancelActive):
			h.logger.Warn("PATCH /bookings/%d/cancel - Customer attempted to cancel active rental: user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgCancelActive)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrIntegrity):
			handlers.RespondError(w, http.StatusConflict, err.Error())

		default:
			h.logger.Error("PATCH /bookings/%d/cancel - Failed: user_id=%d, error=%v", bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d/cancel - Booking cancelled: user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package update_booking

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
	msgTerminalStatus     = "booking is in a terminal status"
	msgInvalidTransition  = "invalid status transition"
	msgConfirmUnpaid      = "a booking cannot be confirmed before successful payment"
	msgExpirePaid         = "a paid booking cannot be marked as expired"
	msgNotEditable        = "booking details can no longer be modified"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	ReturnLocation  *string  `json:"returnLocation,omitempty"`
	SpecialRequests *string  `json:"specialRequests,omitempty"`
	BookingStatus   *string  `json:"bookingStatus,omitempty"`
	RefundAmount    *float64 `json:"refundAmount,omitempty"`
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

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.UserID(r.Context())
	serviceReq := &models.UpdateBookingRequest{
		Requester:       models.Requester{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())},
		ReturnLocation:  req.ReturnLocation,
		SpecialRequests: req.SpecialRequests,
		BookingStatus:   req.BookingStatus,
		RefundAmount:    req.RefundAmount,
	}

	result, err := h.service.Update(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/%d - Access denied: user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookingsService.ErrTerminalStatus):
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/%d - Invalid transition: user_id=%d, error=%v", bookingID, userID, err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookingsService.ErrConfirmRequiresPayment):
			handlers.RespondError(w, http.StatusConflict, msgConfirmUnpaid)

		case errors.Is(err, bookingsService.ErrExpirePaidBooking):
			handlers.RespondError(w, http.StatusConflict, msgExpirePaid)

		case errors.Is(err, bookingsService.ErrNotEditable):
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		case errors.Is(err, bookingsService.ErrIntegrity):
			handlers.RespondError(w, http.StatusConflict, err.Error())

		default:
			h.logger.Error("PATCH /bookings/%d - Failed: user_id=%d, error=%v", bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d - Booking updated: status=%s, user_id=%d",
		bookingID, result.BookingStatus, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

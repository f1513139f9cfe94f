package simulate_payment

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
	msgNotPendingPayment  = "only pending-payment bookings can process payment retries"
	msgWindowExpired      = "payment window has expired for this booking"
	msgAlreadyCompleted   = "payment has already been completed for this booking"
	msgTerminalStatus     = "booking is in a terminal status"
)

// SimulatePaymentRequest HTTP request model
type SimulatePaymentRequest struct {
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	// Succeeded defaults to true: the happy-path simulation.
	Succeeded *bool `json:"succeeded,omitempty"`
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

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SimulatePaymentRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /bookings/%d/payment - Invalid request body: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	userID, _ := middleware.UserID(r.Context())
	serviceReq := &models.SimulatePaymentRequest{
		Requester:     models.Requester{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())},
		PaymentMethod: req.PaymentMethod,
		Succeeded:     req.Succeeded,
	}

	result, err := h.service.SimulatePayment(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/%d/payment - Access denied: user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrPaymentWindowExpired):
			h.logger.Warn("POST /bookings/%d/payment - Payment window expired: user_id=%d", bookingID, userID)
			handlers.RespondError(w, http.StatusConflict, msgWindowExpired)

		case errors.Is(err, bookingsService.ErrPaymentAlreadyCompleted):
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCompleted)

		case errors.Is(err, bookingsService.ErrNotAwaitingPayment):
			handlers.RespondError(w, http.StatusConflict, msgNotPendingPayment)

		case errors.Is(err, bookingsService.ErrTerminalStatus):
			handlers.RespondError(w, http.StatusConflict, msgTerminalStatus)

		case errors.Is(err, bookingsService.ErrIntegrity):
			handlers.RespondError(w, http.StatusConflict, err.Error())

		default:
			h.logger.Error("POST /bookings/%d/payment - Failed: user_id=%d, error=%v", bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/payment - Payment processed: status=%s, user_id=%d",
		bookingID, result.PaymentStatus, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

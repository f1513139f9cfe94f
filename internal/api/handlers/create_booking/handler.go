package create_booking

import (
	"errors"
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	createBooking "github.com/garizetu/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateFormat  = "invalid date format, expected YYYY-MM-DD"
	msgUserNotFound       = "user not found"
	msgCarNotFound        = "car not found"
	msgCarMaintenance     = "car is under maintenance"
	msgCarNotAvailable    = "car is not available for the selected dates"
	msgInvalidDate        = "pickup date must not be in the past"
	msgInvalidPeriod      = "return date must be after pickup date"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrCarNotFound):
			h.logger.Warn("POST /bookings - Car not found: car_id=%d", req.CarID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createBooking.ErrCarUnderMaintenance):
			h.logger.Warn("POST /bookings - Car under maintenance: car_id=%d", req.CarID)
			handlers.RespondError(w, http.StatusConflict, msgCarMaintenance)

		case errors.Is(err, createBooking.ErrCarNotAvailable):
			h.logger.Warn("POST /bookings - Car not available: car_id=%d, user_id=%d", req.CarID, userID)
			handlers.RespondError(w, http.StatusConflict, msgCarNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidPeriod):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, car_id=%d, error=%v",
				userID, req.CarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, car_id=%d",
		result.ID, userID, req.CarID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package get_admin_bookings

import (
	"errors"
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	bookingsService "github.com/garizetu/booking-service/internal/service/bookings"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidCarID  = "invalid car id"
	msgInvalidStatus = "invalid status filter"
	msgAccessDenied  = "access denied"
)

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

// HandleList GET /api/v1/admin/bookings?status=CONFIRMED
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	requester := requesterFrom(r)

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetAll(r.Context(), requester, status)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("GET /admin/bookings - Access denied: user_id=%d", requester.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/bookings - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCarBookings GET /api/v1/admin/cars/{carId}/bookings
func (h *Handler) HandleCarBookings(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathID(r, "carId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	requester := requesterFrom(r)

	result, err := h.service.GetCarBookings(r.Context(), carID, requester)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("GET /admin/cars/%d/bookings - Access denied: user_id=%d", carID, requester.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /admin/cars/%d/bookings - Failed: error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func requesterFrom(r *http.Request) models.Requester {
	userID, _ := middleware.UserID(r.Context())
	return models.Requester{UserID: userID, IsAdmin: middleware.IsAdmin(r.Context())}
}

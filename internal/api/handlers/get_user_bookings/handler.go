package get_user_bookings

import (
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "invalid user id"
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

// Handle GET /api/v1/users/{userId}/bookings
// Customers may only read their own history; admins may read anyone's.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	callerID, _ := middleware.UserID(r.Context())
	isAdmin := middleware.IsAdmin(r.Context())

	if targetID != callerID && !isAdmin {
		h.logger.Warn("GET /users/%d/bookings - Access denied: caller_id=%d", targetID, callerID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), models.Requester{UserID: targetID, IsAdmin: isAdmin})
	if err != nil {
		h.logger.Error("GET /users/%d/bookings - Failed: error=%v", targetID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

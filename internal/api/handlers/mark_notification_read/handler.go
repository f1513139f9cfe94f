package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	notificationsService "github.com/garizetu/booking-service/internal/service/notifications"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgBookingNotFound  = "booking not found"
	msgAccessDenied     = "access denied"
	msgNoNotification   = "booking has no admin notification to mark as read"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/notifications/{bookingId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.MarkRead(r.Context(), bookingID, middleware.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, notificationsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, notificationsService.ErrAccessDenied):
			userID, _ := middleware.UserID(r.Context())
			h.logger.Warn("PATCH /admin/notifications/%d/read - Access denied: user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, notificationsService.ErrNoNotification):
			handlers.RespondError(w, http.StatusConflict, msgNoNotification)

		default:
			h.logger.Error("PATCH /admin/notifications/%d/read - Failed: error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/notifications/%d/read - Notification acknowledged", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

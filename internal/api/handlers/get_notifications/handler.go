package get_notifications

import (
	"errors"
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	notificationsService "github.com/garizetu/booking-service/internal/service/notifications"
)

const msgAccessDenied = "access denied"

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

// Handle GET /api/v1/admin/notifications?unread=true
// Defaults to the unread feed; unread=false returns the full history.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	isAdmin := middleware.IsAdmin(r.Context())
	unreadOnly := r.URL.Query().Get("unread") != "false"

	fetch := h.service.Unread
	if !unreadOnly {
		fetch = h.service.All
	}

	result, err := fetch(r.Context(), isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, notificationsService.ErrAccessDenied):
			userID, _ := middleware.UserID(r.Context())
			h.logger.Warn("GET /admin/notifications - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /admin/notifications - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

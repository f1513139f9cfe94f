package get_booking_stats

import (
	"errors"
	"net/http"

	"github.com/garizetu/booking-service/internal/api/handlers"
	"github.com/garizetu/booking-service/internal/api/middleware"
	statsService "github.com/garizetu/booking-service/internal/service/stats"
)

const msgAccessDenied = "access denied"

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), middleware.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, statsService.ErrAccessDenied):
			userID, _ := middleware.UserID(r.Context())
			h.logger.Warn("GET /admin/stats - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /admin/stats - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_fleet_availability

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/garizetu/booking-service/internal/api/handlers"
	fleetAvailability "github.com/garizetu/booking-service/internal/usecase/get_fleet_availability"
)

const msgInvalidCarIDs = "carIds must be a comma-separated list of positive integers"

type Handler struct {
	useCase FleetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase FleetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/availability?carIds=1,2,3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carIDs, err := parseCarIDs(r.URL.Query().Get("carIds"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCarIDs)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &fleetAvailability.Request{CarIDs: carIDs})
	if err != nil {
		h.logger.Error("GET /cars/availability - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseCarIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid car id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

package get_fleet_availability

import (
	"context"

	fleetAvailability "github.com/garizetu/booking-service/internal/usecase/get_fleet_availability"
)

type FleetAvailabilityUseCase interface {
	Execute(ctx context.Context, req *fleetAvailability.Request) (*fleetAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

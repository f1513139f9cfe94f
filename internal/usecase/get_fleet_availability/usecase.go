package get_fleet_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/garizetu/booking-service/internal/domain"
)

// UseCase builds the per-car availability report for listing pages.
type UseCase struct {
	carRepo      CarRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the fleet availability use case.
func NewUseCase(carRepo CarRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		carRepo:      carRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute resolves the availability of every requested car in one pass:
// a single blocking-bookings query, grouped by car. Maintenance takes
// precedence over bookings; among blockers the earliest-ending one decides
// the verdict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	cars, err := uc.carRepo.ListIDs(ctx)
	if err != nil {
		uc.logger.Error("GetFleetAvailability: failed to list cars: %v", err)
		return nil, fmt.Errorf("%w: failed to list cars: %v", ErrInternal, err)
	}
	cars = filterCars(cars, req.CarIDs)
	if len(cars) == 0 {
		return &Response{Cars: []CarReport{}}, nil
	}

	carIDs := make([]int64, 0, len(cars))
	for _, car := range cars {
		carIDs = append(carIDs, car.ID)
	}

	blocking, err := uc.bookingRepo.FindBlockingForCars(ctx, carIDs, now)
	if err != nil {
		uc.logger.Error("GetFleetAvailability: blocking query failed: %v", err)
		return nil, fmt.Errorf("%w: blocking query: %v", ErrInternal, err)
	}

	byCar := make(map[int64][]*domain.Booking, len(cars))
	for _, b := range blocking {
		byCar[b.CarID] = append(byCar[b.CarID], b)
	}

	resp := &Response{Cars: make([]CarReport, 0, len(cars))}
	for _, car := range cars {
		availability := classify(car, byCar[car.ID], now)
		resp.Cars = append(resp.Cars, fromDomain(availability))
	}

	return resp, nil
}

func filterCars(cars []*domain.Car, ids []int64) []*domain.Car {
	if len(ids) == 0 {
		return cars
	}
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	filtered := make([]*domain.Car, 0, len(ids))
	for _, car := range cars {
		if wanted[car.ID] {
			filtered = append(filtered, car)
		}
	}
	return filtered
}

// classify derives one car's availability verdict from its blocking bookings.
func classify(car *domain.Car, blockers []*domain.Booking, now time.Time) *domain.CarAvailability {
	if car.Status == domain.CarMaintenance {
		return &domain.CarAvailability{
			CarID:   car.ID,
			State:   domain.AvailabilityMaintenance,
			Message: "car is under maintenance",
		}
	}

	blocker := earliestEnding(blockers, now)
	if blocker == nil {
		return &domain.CarAvailability{
			CarID:   car.ID,
			State:   domain.AvailabilityAvailable,
			Message: "car is available",
		}
	}

	pickup := blocker.PickupDate
	ret := blocker.ReturnDate

	if blocker.BookingStatus.IsHardBlocking() {
		return &domain.CarAvailability{
			CarID:           car.ID,
			State:           domain.AvailabilityBooked,
			BlockedFrom:     &pickup,
			BlockedTo:       &ret,
			NextAvailableAt: &ret,
			Message:         fmt.Sprintf("booked until %s", ret.Format(domain.DateFormat)),
		}
	}

	availability := &domain.CarAvailability{
		CarID:       car.ID,
		State:       domain.AvailabilitySoftLocked,
		BlockedFrom: &pickup,
		BlockedTo:   &ret,
		Message:     "pending payment, lock releases shortly",
	}
	if blocker.PaymentExpiresAt != nil {
		expires := *blocker.PaymentExpiresAt
		availability.SoftLockExpiresAt = &expires
		availability.Message = fmt.Sprintf("pending payment, releases at %s", expires.Format(time.RFC3339))
	}
	return availability
}

// earliestEnding picks the blocking booking that frees the car first, skipping
// bookings whose rental period already ended.
func earliestEnding(blockers []*domain.Booking, now time.Time) *domain.Booking {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var earliest *domain.Booking
	for _, b := range blockers {
		if !b.ReturnDate.After(today) {
			continue
		}
		if earliest == nil || b.ReturnDate.Before(earliest.ReturnDate) {
			earliest = b
		}
	}
	return earliest
}

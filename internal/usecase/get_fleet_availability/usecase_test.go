package get_fleet_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garizetu/booking-service/internal/domain"
)

type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) ListIDs(ctx context.Context) ([]*domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Car), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindBlockingForCars(ctx context.Context, carIDs []int64, asOf time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, carIDs, asOf)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(carRepo *MockCarRepository, bookingRepo *MockBookingRepository) *UseCase {
	return &UseCase{
		carRepo:      carRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &fixedClock{now: testNow},
		logger:       nopLogger{},
	}
}

func TestExecute_ClassifiesWholeFleet(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	uc := newTestUseCase(carRepo, bookingRepo)

	softExpires := testNow.Add(10 * time.Minute)
	carRepo.On("ListIDs", mock.Anything).Return([]*domain.Car{
		{ID: 1, Status: domain.CarAvailable},
		{ID: 2, Status: domain.CarAvailable},
		{ID: 3, Status: domain.CarMaintenance},
		{ID: 4, Status: domain.CarAvailable},
	}, nil).Once()
	bookingRepo.On("FindBlockingForCars", mock.Anything, []int64{1, 2, 3, 4}, testNow).
		Return([]*domain.Booking{
			{
				CarID:         2,
				PickupDate:    date(12),
				ReturnDate:    date(15),
				BookingStatus: domain.StatusConfirmed,
			},
			{
				CarID:            4,
				PickupDate:       date(11),
				ReturnDate:       date(13),
				BookingStatus:    domain.StatusPendingPayment,
				PaymentStatus:    domain.PaymentUnpaid,
				PaymentExpiresAt: &softExpires,
			},
		}, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{})

	assert.NoError(t, err)
	assert.Len(t, resp.Cars, 4)

	byID := map[int64]CarReport{}
	for _, c := range resp.Cars {
		byID[c.CarID] = c
	}

	assert.Equal(t, string(domain.AvailabilityAvailable), byID[1].State)

	booked := byID[2]
	assert.Equal(t, string(domain.AvailabilityBooked), booked.State)
	assert.Equal(t, "2025-06-15", *booked.NextAvailableAt)
	assert.Equal(t, "2025-06-12", *booked.BlockedFrom)
	assert.Contains(t, booked.Message, "booked until 2025-06-15")

	assert.Equal(t, string(domain.AvailabilityMaintenance), byID[3].State)

	soft := byID[4]
	assert.Equal(t, string(domain.AvailabilitySoftLocked), soft.State)
	assert.Equal(t, softExpires.Format(time.RFC3339), *soft.SoftLockExpiresAt)
	assert.Nil(t, soft.NextAvailableAt)
}

func TestExecute_MaintenanceWinsOverBookings(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	uc := newTestUseCase(carRepo, bookingRepo)

	carRepo.On("ListIDs", mock.Anything).Return([]*domain.Car{
		{ID: 1, Status: domain.CarMaintenance},
	}, nil).Once()
	bookingRepo.On("FindBlockingForCars", mock.Anything, []int64{1}, testNow).
		Return([]*domain.Booking{
			{CarID: 1, PickupDate: date(12), ReturnDate: date(15), BookingStatus: domain.StatusActive},
		}, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.AvailabilityMaintenance), resp.Cars[0].State)
	assert.Nil(t, resp.Cars[0].NextAvailableAt)
}

func TestExecute_EarliestEndingBlockerWins(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	uc := newTestUseCase(carRepo, bookingRepo)

	carRepo.On("ListIDs", mock.Anything).Return([]*domain.Car{
		{ID: 1, Status: domain.CarAvailable},
	}, nil).Once()
	bookingRepo.On("FindBlockingForCars", mock.Anything, []int64{1}, testNow).
		Return([]*domain.Booking{
			{CarID: 1, PickupDate: date(20), ReturnDate: date(25), BookingStatus: domain.StatusConfirmed},
			{CarID: 1, PickupDate: date(11), ReturnDate: date(14), BookingStatus: domain.StatusActive},
		}, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{})

	assert.NoError(t, err)
	assert.Equal(t, "2025-06-14", *resp.Cars[0].NextAvailableAt)
}

func TestExecute_FinishedRentalsDoNotBlock(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	uc := newTestUseCase(carRepo, bookingRepo)

	carRepo.On("ListIDs", mock.Anything).Return([]*domain.Car{
		{ID: 1, Status: domain.CarAvailable},
	}, nil).Once()
	// Overdue active rental that should have been returned today.
	bookingRepo.On("FindBlockingForCars", mock.Anything, []int64{1}, testNow).
		Return([]*domain.Booking{
			{CarID: 1, PickupDate: date(5), ReturnDate: date(10), BookingStatus: domain.StatusActive},
		}, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.AvailabilityAvailable), resp.Cars[0].State)
}

func TestExecute_CarFilter(t *testing.T) {
	carRepo := &MockCarRepository{}
	bookingRepo := &MockBookingRepository{}
	uc := newTestUseCase(carRepo, bookingRepo)

	carRepo.On("ListIDs", mock.Anything).Return([]*domain.Car{
		{ID: 1, Status: domain.CarAvailable},
		{ID: 2, Status: domain.CarAvailable},
		{ID: 3, Status: domain.CarAvailable},
	}, nil).Once()
	bookingRepo.On("FindBlockingForCars", mock.Anything, []int64{2}, testNow).
		Return([]*domain.Booking{}, nil).Once()

	resp, err := uc.Execute(context.Background(), &Request{CarIDs: []int64{2}})

	assert.NoError(t, err)
	assert.Len(t, resp.Cars, 1)
	assert.Equal(t, int64(2), resp.Cars[0].CarID)
}

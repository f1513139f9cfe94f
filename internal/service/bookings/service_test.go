package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garizetu/booking-service/internal/domain"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
	"github.com/garizetu/booking-service/pkg/ptr"
)

// Mock structures

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByCarID(ctx context.Context, carID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) SaveAll(ctx context.Context, bookings []*domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *MockBookingRepository) FindExpiredPendingPayment(ctx context.Context, asOf time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepository) UpdateStatus(ctx context.Context, id int64, status domain.CarStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// fakeTxManager runs the function inline without a database.
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedClock pins Now for deterministic window checks.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newTestService(bookingRepo *MockBookingRepository, carRepo *MockCarRepository) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		txManager:    &fakeTxManager{},
		timeProvider: &fixedClock{now: testNow},
		logger:       nopLogger{},
	}
}

func pendingBooking(id int64) *domain.Booking {
	expires := testNow.Add(5 * time.Minute)
	return &domain.Booking{
		ID:               id,
		UserID:           42,
		CarID:            7,
		PickupDate:       time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		ReturnDate:       time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		PickupLocation:   "Nairobi CBD",
		ReturnLocation:   "Nairobi CBD",
		DailyPrice:       3000,
		TotalPrice:       9000,
		BookingStatus:    domain.StatusPendingPayment,
		PaymentStatus:    domain.PaymentUnpaid,
		PaymentExpiresAt: &expires,
	}
}

func expectNoSweepWork(repo *MockBookingRepository) {
	repo.On("FindExpiredPendingPayment", mock.Anything, testNow).
		Return([]*domain.Booking{}, nil)
}

// ========== GetByID ==========

func TestGetByID_OwnerAndAdminAllowed(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(1)
	bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	resp, err := svc.GetByID(context.Background(), 1, models.Requester{UserID: 42})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-06-20", resp.PickupDate)

	resp, err = svc.GetByID(context.Background(), 1, models.Requester{UserID: 99, IsAdmin: true})
	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestGetByID_ForeignCustomerDenied(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(1), nil)

	_, err := svc.GetByID(context.Background(), 1, models.Requester{UserID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_CorruptedRowSurfacesIntegrityError(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(1)
	b.CarID = 0
	bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := svc.GetByID(context.Background(), 1, models.Requester{UserID: 42})
	assert.ErrorIs(t, err, ErrIntegrity)
}

// ========== SimulatePayment ==========

func TestSimulatePayment_SuccessConfirmsAndNotifies(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(5)
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	method := "m-pesa"
	resp, err := svc.SimulatePayment(context.Background(), 5, &models.SimulatePaymentRequest{
		Requester:     models.Requester{UserID: 42},
		PaymentMethod: &method,
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, "M_PESA", *b.PaymentMethod)
	assert.True(t, strings.HasPrefix(*b.PaymentReference, "PAY-5-"))
	assert.Len(t, *b.PaymentReference, len("PAY-5-")+domain.PaymentRefSuffixLength)
	assert.Nil(t, b.PaymentExpiresAt)
	assert.Equal(t, testNow, *b.PaymentSimulatedAt)
	assert.True(t, b.HasUnreadNotification())
	bookingRepo.AssertExpectations(t)
}

func TestSimulatePayment_FailureKeepsBookingRetryable(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(5)
	window := *b.PaymentExpiresAt
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.SimulatePayment(context.Background(), 5, &models.SimulatePaymentRequest{
		Requester: models.Requester{UserID: 42},
		Succeeded: ptr.Ptr(false),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentFailed), resp.PaymentStatus)
	assert.True(t, strings.HasPrefix(*b.PaymentReference, "FAIL-5-"))
	assert.Equal(t, "M_PESA", *b.PaymentMethod) // defaulted
	assert.Equal(t, window, *b.PaymentExpiresAt)
	assert.False(t, b.HasNotification())
}

func TestSimulatePayment_AlreadyPaidRejected(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(5)
	b.PaymentStatus = domain.PaymentPaid
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	_, err := svc.SimulatePayment(context.Background(), 5, &models.SimulatePaymentRequest{
		Requester: models.Requester{UserID: 42},
	})
	assert.ErrorIs(t, err, ErrPaymentAlreadyCompleted)
}

func TestSimulatePayment_LegacySimulatedPaidCountsAsPaid(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(5)
	b.BookingStatus = domain.StatusLegacyPending
	b.PaymentStatus = domain.PaymentLegacySimulatedPaid
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	_, err := svc.SimulatePayment(context.Background(), 5, &models.SimulatePaymentRequest{
		Requester: models.Requester{UserID: 42},
	})
	assert.ErrorIs(t, err, ErrPaymentAlreadyCompleted)
}

func TestSimulatePayment_WindowExpiredExpiresBookingAndFails(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(5)
	past := testNow.Add(-time.Minute)
	b.PaymentExpiresAt = &past
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarAvailable).Return(nil).Once()
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	_, err := svc.SimulatePayment(context.Background(), 5, &models.SimulatePaymentRequest{
		Requester: models.Requester{UserID: 42},
	})

	assert.ErrorIs(t, err, ErrPaymentWindowExpired)
	assert.Equal(t, domain.StatusExpired, b.BookingStatus)
	carRepo.AssertExpectations(t)
	bookingRepo.AssertExpectations(t)
}

func TestSimulatePayment_NonPendingRejected(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(5)
	b.BookingStatus = domain.StatusActive
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	_, err := svc.SimulatePayment(context.Background(), 5, &models.SimulatePaymentRequest{
		Requester: models.Requester{UserID: 42},
	})
	assert.ErrorIs(t, err, ErrNotAwaitingPayment)
}

func TestNormalizePaymentMethod(t *testing.T) {
	cases := map[string]string{
		"m-pesa":      "M_PESA",
		" Visa Card ": "VISA_CARD",
		"airtel":      "AIRTEL",
		"":            "M_PESA",
	}
	for in, want := range cases {
		v := in
		assert.Equal(t, want, normalizePaymentMethod(&v), "input %q", in)
	}
	assert.Equal(t, "M_PESA", normalizePaymentMethod(nil))
}

// ========== Update / admin transitions ==========

func TestUpdate_AdminCancelsActiveRental(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(9)
	b.BookingStatus = domain.StatusActive
	b.PaymentStatus = domain.PaymentPaid
	b.PaymentExpiresAt = nil
	b.RaiseNotification(testNow.Add(-time.Hour))

	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarAvailable).Return(nil).Once()
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 1, IsAdmin: true},
		BookingStatus: ptr.Ptr(string(domain.StatusCancelled)),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	assert.False(t, b.HasUnreadNotification())
	carRepo.AssertExpectations(t)
}

func TestUpdate_ActivationMarksCarRented(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(9)
	b.BookingStatus = domain.StatusConfirmed
	b.PaymentStatus = domain.PaymentPaid
	b.PaymentExpiresAt = nil

	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarRented).Return(nil).Once()
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 1, IsAdmin: true},
		BookingStatus: ptr.Ptr(string(domain.StatusActive)),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusActive), resp.BookingStatus)
	carRepo.AssertExpectations(t)
}

func TestUpdate_ConfirmClearsPaymentWindow(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	b.PaymentStatus = domain.PaymentLegacySimulatedPaid
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 1, IsAdmin: true},
		BookingStatus: ptr.Ptr(string(domain.StatusConfirmed)),
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.BookingStatus)
	assert.Nil(t, b.PaymentExpiresAt)
	assert.True(t, b.HasUnreadNotification())
}

func TestUpdate_ConfirmRequiresPayment(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	_, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 1, IsAdmin: true},
		BookingStatus: ptr.Ptr(string(domain.StatusConfirmed)),
	})
	assert.ErrorIs(t, err, ErrConfirmRequiresPayment)
}

func TestUpdate_CannotExpirePaidBooking(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	b.PaymentStatus = domain.PaymentPaid
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	_, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 1, IsAdmin: true},
		BookingStatus: ptr.Ptr(string(domain.StatusExpired)),
	})
	assert.ErrorIs(t, err, ErrExpirePaidBooking)
}

func TestUpdate_TerminalBookingRejectsTransitions(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	b.BookingStatus = domain.StatusCompleted
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	_, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 1, IsAdmin: true},
		BookingStatus: ptr.Ptr(string(domain.StatusCancelled)),
	})
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestUpdate_CustomerCannotChangeStatus(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	_, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:     models.Requester{UserID: 42},
		BookingStatus: ptr.Ptr(string(domain.StatusCancelled)),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_CustomerEditsFieldsWhileEditable(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	b.BookingStatus = domain.StatusConfirmed
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:       models.Requester{UserID: 42},
		ReturnLocation:  ptr.Ptr("JKIA Airport"),
		SpecialRequests: ptr.Ptr("child seat please"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "JKIA Airport", resp.ReturnLocation)
	assert.Equal(t, "child seat please", *resp.SpecialRequests)
}

func TestUpdate_CustomerCannotEditActiveRental(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	b.BookingStatus = domain.StatusActive
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	_, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:      models.Requester{UserID: 42},
		ReturnLocation: ptr.Ptr("JKIA Airport"),
	})
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestUpdate_OversizedSpecialRequestsRejected(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(9)
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(9)).Return(b, nil)

	_, err := svc.Update(context.Background(), 9, &models.UpdateBookingRequest{
		Requester:       models.Requester{UserID: 42},
		SpecialRequests: ptr.Ptr(strings.Repeat("x", domain.MaxSpecialRequestsChars+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ========== Cancel ==========

func TestCancel_CustomerBeforePickup(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(3)
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(3)).Return(b, nil)
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarAvailable).Return(nil).Once()
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{
		Requester: models.Requester{UserID: 42},
		Reason:    "change of plans",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus) // nothing to refund
	carRepo.AssertExpectations(t)
}

func TestCancel_PaidBookingIsRefunded(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(3)
	b.BookingStatus = domain.StatusConfirmed
	b.PaymentStatus = domain.PaymentPaid
	b.PaymentExpiresAt = nil
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(3)).Return(b, nil)
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarAvailable).Return(nil).Once()
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{
		Requester: models.Requester{UserID: 42},
		Reason:    "trip cancelled",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
}

func TestCancel_CustomerOnPickupDayRejected(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(3)
	b.PickupDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) // today
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(3)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{
		Requester: models.Requester{UserID: 42},
	})
	assert.ErrorIs(t, err, ErrCancelAfterPickup)
}

func TestCancel_CustomerCannotCancelActiveRental(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(3)
	b.BookingStatus = domain.StatusActive
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(3)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{
		Requester: models.Requester{UserID: 42},
	})
	assert.ErrorIs(t, err, ErrCustomerCancelActive)
}

func TestCancel_AdminCancelsAfterPickupDate(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b := pendingBooking(3)
	b.BookingStatus = domain.StatusActive
	b.PaymentStatus = domain.PaymentPaid
	b.PickupDate = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(3)).Return(b, nil)
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarAvailable).Return(nil).Once()
	bookingRepo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{
		Requester: models.Requester{UserID: 1, IsAdmin: true},
		Reason:    "vehicle recalled",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.BookingStatus)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
}

func TestCancel_TerminalBookingRejected(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	b := pendingBooking(3)
	b.BookingStatus = domain.StatusExpired
	expectNoSweepWork(bookingRepo)
	bookingRepo.On("GetByID", mock.Anything, int64(3)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 3, &models.CancelBookingRequest{
		Requester: models.Requester{UserID: 42},
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

// ========== Expiry sweep ==========

func TestExpirePendingPayment_ExpiresStaleBookings(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	carRepo := &MockCarRepository{}
	svc := newTestService(bookingRepo, carRepo)

	b1 := pendingBooking(1)
	b2 := pendingBooking(2)
	b2.CarID = 8
	b2.PaymentStatus = domain.PaymentFailed
	b2.RaiseNotification(testNow.Add(-time.Hour))
	stale := []*domain.Booking{b1, b2}

	bookingRepo.On("FindExpiredPendingPayment", mock.Anything, testNow).Return(stale, nil).Once()
	carRepo.On("UpdateStatus", mock.Anything, int64(7), domain.CarAvailable).Return(nil).Once()
	carRepo.On("UpdateStatus", mock.Anything, int64(8), domain.CarAvailable).Return(nil).Once()
	bookingRepo.On("SaveAll", mock.Anything, stale).Return(nil).Once()

	count, err := svc.ExpirePendingPayment(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, domain.StatusExpired, b1.BookingStatus)
	assert.Equal(t, domain.StatusExpired, b2.BookingStatus)
	assert.False(t, b2.HasUnreadNotification())
	bookingRepo.AssertExpectations(t)
	carRepo.AssertExpectations(t)
}

func TestExpirePendingPayment_NothingToDo(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	bookingRepo.On("FindExpiredPendingPayment", mock.Anything, testNow).
		Return([]*domain.Booking{}, nil).Once()

	count, err := svc.ExpirePendingPayment(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, count)
	bookingRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

// ========== Admin lists ==========

func TestGetAll_CustomerDenied(t *testing.T) {
	svc := newTestService(&MockBookingRepository{}, &MockCarRepository{})

	_, err := svc.GetAll(context.Background(), models.Requester{UserID: 42}, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetAll_StatusFilterValidated(t *testing.T) {
	bookingRepo := &MockBookingRepository{}
	svc := newTestService(bookingRepo, &MockCarRepository{})

	bad := "IN_PROGRESS"
	_, err := svc.GetAll(context.Background(), models.Requester{UserID: 1, IsAdmin: true}, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	good := "CONFIRMED"
	bookingRepo.On("GetByStatus", mock.Anything, domain.StatusConfirmed).
		Return([]*domain.Booking{pendingBooking(1)}, nil).Once()
	resp, err := svc.GetAll(context.Background(), models.Requester{UserID: 1, IsAdmin: true}, &good)
	assert.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garizetu/booking-service/internal/domain"
)

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

func (m *MockBookingRepository) UnreadNotifications(ctx context.Context) ([]*domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) AllNotifications(ctx context.Context) ([]*domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

func newTestService(repo *MockBookingRepository) *Service {
	return &Service{
		bookingRepo:  repo,
		txManager:    &fakeTxManager{},
		timeProvider: &fixedClock{now: testNow},
		logger:       nopLogger{},
	}
}

func notifiedBooking(id int64) *domain.Booking {
	b := &domain.Booking{
		ID:            id,
		UserID:        42,
		CarID:         7,
		PickupDate:    time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		TotalPrice:    9000,
		BookingStatus: domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
	b.RaiseNotification(testNow.Add(-time.Hour))
	return b
}

func TestUnread_AdminOnly(t *testing.T) {
	svc := newTestService(&MockBookingRepository{})

	_, err := svc.Unread(context.Background(), false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUnread_CountsUnreadEntries(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := newTestService(repo)

	b1 := notifiedBooking(1)
	b2 := notifiedBooking(2)
	repo.On("UnreadNotifications", mock.Anything).Return([]*domain.Booking{b1, b2}, nil)

	resp, err := svc.Unread(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 2, resp.UnreadCount)
	assert.False(t, resp.Notifications[0].Read)
}

func TestAll_IncludesReadEntries(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := newTestService(repo)

	read := notifiedBooking(1)
	read.MarkNotificationRead(testNow.Add(-30 * time.Minute))
	unread := notifiedBooking(2)
	repo.On("AllNotifications", mock.Anything).Return([]*domain.Booking{unread, read}, nil)

	resp, err := svc.All(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 1, resp.UnreadCount)
}

func TestMarkRead_AcknowledgesAndStampsTime(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := newTestService(repo)

	b := notifiedBooking(5)
	repo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	repo.On("Save", mock.Anything, b).Return(nil).Once()

	resp, err := svc.MarkRead(context.Background(), 5, true)

	assert.NoError(t, err)
	assert.True(t, resp.Read)
	assert.NotNil(t, resp.ReadAt)
	assert.Equal(t, testNow, *b.AdminNotificationReadAt)
	repo.AssertExpectations(t)
}

func TestMarkRead_IdempotentOnAlreadyRead(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := newTestService(repo)

	b := notifiedBooking(5)
	firstRead := testNow.Add(-time.Minute)
	b.MarkNotificationRead(firstRead)
	repo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	resp, err := svc.MarkRead(context.Background(), 5, true)

	assert.NoError(t, err)
	assert.True(t, resp.Read)
	assert.Equal(t, firstRead, *b.AdminNotificationReadAt) // first read wins
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMarkRead_NoNotificationIsConflict(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := newTestService(repo)

	b := notifiedBooking(5)
	b.AdminNotifiedAt = nil
	b.AdminNotificationRead = false
	repo.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	_, err := svc.MarkRead(context.Background(), 5, true)
	assert.ErrorIs(t, err, ErrNoNotification)
}

func TestMarkRead_AdminOnly(t *testing.T) {
	svc := newTestService(&MockBookingRepository{})

	_, err := svc.MarkRead(context.Background(), 5, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

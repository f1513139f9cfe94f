package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garizetu/booking-service/internal/api/middleware"
	bookingsService "github.com/garizetu/booking-service/internal/service/bookings"
	"github.com/garizetu/booking-service/internal/service/bookings/models"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestRouter(svc BookingService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)
	return r
}

func TestHandle_CustomerCancelActiveForbidden(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("Cancel", mock.Anything, int64(9), mock.Anything).
		Return(nil, bookingsService.ErrCustomerCancelActive)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/cancel", nil)
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), msgCancelActive)
}

func TestHandle_CustomerCancelAfterPickupConflict(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("Cancel", mock.Anything, int64(9), mock.Anything).
		Return(nil, bookingsService.ErrCancelAfterPickup)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/cancel", nil)
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgCancelAfterPickup)
}

func TestHandle_ForeignBookingForbidden(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("Cancel", mock.Anything, int64(9), mock.Anything).
		Return(nil, bookingsService.ErrAccessDenied)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/cancel", nil)
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandle_MissingIdentityUnauthorized(t *testing.T) {
	svc := &MockBookingService{}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/9/cancel", nil)
	rec := httptest.NewRecorder()

	newTestRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Cancel")
}

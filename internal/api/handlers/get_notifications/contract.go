package get_notifications

import (
	"context"

	"github.com/garizetu/booking-service/internal/service/notifications/models"
)

type NotificationService interface {
	Unread(ctx context.Context, isAdmin bool) (*models.NotificationListResponse, error)
	All(ctx context.Context, isAdmin bool) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

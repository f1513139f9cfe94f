package mark_notification_read

import (
	"context"

	"github.com/garizetu/booking-service/internal/service/notifications/models"
)

type NotificationService interface {
	MarkRead(ctx context.Context, id int64, isAdmin bool) (*models.NotificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package repositories

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	// ListNotifications retrieves a paginated list of a company's notifications,
	// newest first, optionally restricted to unread ones.
	ListNotifications(ctx context.Context, companyID string, unreadOnly bool, limit int, nextToken *string) ([]domain.Notification, *string, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// MarkNotificationRead marks one notification as read.
	MarkNotificationRead(ctx context.Context, companyID, notificationID string) error
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}

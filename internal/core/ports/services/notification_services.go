package services

import (
	"context"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// NotificationSvcFacade defines operations for company notifications
type NotificationSvcFacade interface {
	// ListNotifications retrieves a paginated list of a company's notifications.
	ListNotifications(ctx context.Context, companyID string, unreadOnly bool, limit int, nextToken *string, requestingUserID string) ([]domain.Notification, *string, error)

	// NotifyPayment records a notification for a received or sent payment.
	NotifyPayment(ctx context.Context, payment *domain.Payment, partyName string) error

	// NotifyCreditLimit records a notification when a party crosses its credit limit.
	NotifyCreditLimit(ctx context.Context, companyID string, party *domain.Party) error

	// MarkRead marks one notification as read.
	MarkRead(ctx context.Context, companyID, notificationID string, requestingUserID string) error
}

package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	CompanyID      string    `json:"companyID"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	ReferenceID    string    `json:"referenceID"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListNotificationsResponse wraps a paginated list of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ToNotificationResponse converts a domain.Notification to its DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		CompanyID:      n.CompanyID,
		Type:           string(n.Type),
		Message:        n.Message,
		ReferenceID:    n.ReferenceID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToListNotificationsResponse converts a page of notifications to the list DTO.
func ToListNotificationsResponse(notifications []domain.Notification, nextToken *string) ListNotificationsResponse {
	res := ListNotificationsResponse{
		Notifications: make([]NotificationResponse, len(notifications)),
		NextToken:     nextToken,
	}
	for i, n := range notifications {
		res.Notifications[i] = ToNotificationResponse(&n)
	}
	return res
}

package domain

import "time"

// NotificationType classifies what a notification is about.
type NotificationType string

const (
	NotificationPaymentReceived NotificationType = "PAYMENT_RECEIVED"
	NotificationPaymentMade     NotificationType = "PAYMENT_MADE"
	NotificationCreditLimit     NotificationType = "CREDIT_LIMIT_EXCEEDED"
)

// Notification is an in-app message for a company's users.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (e.g., UUID)
	CompanyID      string           `json:"companyID"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	ReferenceID    string           `json:"referenceID"` // Payment/party the message refers to
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}

package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Queue notification (async processing via background workers)
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	QueueBulkNotification(ctx context.Context, reqs []CreateNotificationRequest) error

	// Direct operations
	GetNotifications(ctx context.Context, req ListNotificationsRequest) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, employeeID string) (int, error)
	MarkAsRead(ctx context.Context, employeeID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, employeeID string) error
	Delete(ctx context.Context, employeeID string, notificationID string) error

	// Preferences
	GetPreferences(ctx context.Context, employeeID string) ([]PreferenceResponse, error)
	UpdatePreference(ctx context.Context, employeeID string, req UpdatePreferenceRequest) error

	// SSE subscription
	Subscribe(ctx context.Context, employeeID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}

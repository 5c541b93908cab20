package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAttendanceException NotificationType = "attendance_exception"
	TypeAttendanceWarning   NotificationType = "attendance_warning"
	TypeAttendancePenalty   NotificationType = "attendance_penalty"
	TypeAttendanceReview    NotificationType = "attendance_review"
	TypeLeaveRequested      NotificationType = "leave_requested"
	TypeLeaveApproved       NotificationType = "leave_approved"
	TypeLeaveDenied         NotificationType = "leave_denied"
	TypeWorklogSubmitted    NotificationType = "worklog_submitted"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeAttendanceException,
		TypeAttendanceWarning,
		TypeAttendancePenalty,
		TypeAttendanceReview,
		TypeLeaveRequested,
		TypeLeaveApproved,
		TypeLeaveDenied,
		TypeWorklogSubmitted,
	}
}

func (t NotificationType) Valid() bool {
	for _, known := range AllNotificationTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// NotificationPreference lets an employee mute a notification type.
type NotificationPreference struct {
	ID               string
	EmployeeID       string
	NotificationType NotificationType
	Enabled          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/penalty"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/warning"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrFlowaceUserIDExists):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrAdminPasswordRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
		errors.Is(err, attendance.ErrFutureDate),
		errors.Is(err, attendance.ErrInvalidWorkbook),
		errors.Is(err, attendance.ErrMissingColumns):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestExists):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	// Work log domain errors
	case errors.Is(err, worklog.ErrDayLocked):
		Conflict(w, err.Error())
	case errors.Is(err, worklog.ErrDayNotSubmitted),
		errors.Is(err, worklog.ErrNothingToSubmit),
		errors.Is(err, worklog.ErrFutureDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, worklog.ErrTagNotAssigned):
		Forbidden(w, err.Error())
	case errors.Is(err, worklog.ErrActivityDisabled):
		ServiceUnavailable(w, err.Error())

	// Tag domain errors
	case errors.Is(err, tag.ErrTagNotFound):
		NotFound(w, "Tag not found")
	case errors.Is(err, tag.ErrAssignmentNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, tag.ErrTagNameExists),
		errors.Is(err, tag.ErrAlreadyAssigned):
		Conflict(w, err.Error())
	case errors.Is(err, tag.ErrTagInactive):
		BadRequest(w, err.Error(), nil)

	// Warning and penalty domain errors
	case errors.Is(err, warning.ErrWarningNotFound):
		NotFound(w, "Warning not found")
	case errors.Is(err, warning.ErrWarningExists),
		errors.Is(err, warning.ErrAlreadyAcknowledged):
		Conflict(w, err.Error())
	case errors.Is(err, warning.ErrNotWarningRecipient):
		Forbidden(w, err.Error())
	case errors.Is(err, penalty.ErrPenaltyNotFound):
		NotFound(w, "Penalty not found")
	case errors.Is(err, penalty.ErrPenaltyExists),
		errors.Is(err, penalty.ErrPenaltyAlreadyWaived):
		Conflict(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, notification.ErrQueueFull):
		ServiceUnavailable(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

package employee

import (
	"time"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Email        *string
	Department   *string
	IsAdmin      bool
	// PasswordHash is only set for admins.
	PasswordHash  *string
	FlowaceUserID *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package tag

import "errors"

var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagNameExists      = errors.New("tag name already exists")
	ErrTagInactive        = errors.New("tag is inactive")
	ErrAlreadyAssigned    = errors.New("tag already assigned to employee")
	ErrAssignmentNotFound = errors.New("tag is not assigned to employee")
)

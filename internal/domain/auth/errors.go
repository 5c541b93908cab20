package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid employee code or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

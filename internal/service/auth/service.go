package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeReader is the slice of the employee repository login needs.
type EmployeeReader interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error)
}

type AuthServiceImpl struct {
	jwt.Service
	employees EmployeeReader
}

func NewAuthService(jwtService jwt.Service, employees EmployeeReader) *AuthServiceImpl {
	return &AuthServiceImpl{
		Service:   jwtService,
		employees: employees,
	}
}

// LoginWithEmployeeCode implements auth.AuthService. Regular employees log
// in with their code alone; admins also need their password.
func (a *AuthServiceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.LoginEmployeeCodeRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.employees.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if emp.IsAdmin {
		if emp.PasswordHash == nil || req.Password == "" {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, emp.IsAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("Employee logged in", "employee_id", emp.ID, "is_admin", emp.IsAdmin)
	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		EmployeeID:           emp.ID,
		IsAdmin:              emp.IsAdmin,
	}, nil
}

// Logout implements auth.AuthService. The token stays revoked until it
// would have expired anyway.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	verified, _, err := jwtauth.FromContext(ctx)
	if err != nil || verified == nil {
		return auth.ErrInvalidToken
	}
	if a.Service.IsTokenRevoked(token) {
		return auth.ErrTokenRevoked
	}

	a.Service.RevokeToken(token, verified.Expiration().Unix())
	if employeeID, ok := verified.PrivateClaims()["employee_id"].(string); ok {
		slog.Info("Employee logged out", "employee_id", employeeID)
	}
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.ProfileResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	emp, err := a.employees.GetByID(ctx, employeeID)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	return auth.ProfileResponse{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Department:   emp.Department,
		IsAdmin:      emp.IsAdmin,
	}, nil
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context) (auth.SSETokenResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return auth.SSETokenResponse{}, err
	}

	token, expiresIn, err := a.Service.GenerateSSEToken(employeeID)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

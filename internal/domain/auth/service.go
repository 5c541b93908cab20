package auth

import (
	"context"
)

type AuthService interface {
	LoginWithEmployeeCode(ctx context.Context, req LoginEmployeeCodeRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context) (ProfileResponse, error)
	IssueSSEToken(ctx context.Context) (SSETokenResponse, error)
}

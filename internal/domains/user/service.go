package user

import (
	"context"

	"book-catalog/pkg/jwt"
)

// Service - authentication và session lifecycle
type Service interface {
	// Login xác thực credentials và phát session token
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	// Logout revoke session token; token không hợp lệ -> ErrNotLoggedIn
	Logout(ctx context.Context, token string) error
	// CurrentSession trả về claims của session còn hiệu lực
	CurrentSession(ctx context.Context, token string) (*jwt.Claims, error)
	// EnsureUser tạo user nếu chưa có (seed)
	EnsureUser(ctx context.Context, username, password string) error
}

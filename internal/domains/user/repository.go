package user

import "context"

// Repository là persistence của users
type Repository interface {
	// FindByUsername returns ErrUserNotFound khi không có
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Create gán ID; username trùng -> ErrUsernameTaken
	Create(ctx context.Context, u *User) error
}

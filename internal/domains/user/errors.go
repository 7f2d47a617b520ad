package user

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// Service-level errors
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrMissingUsername    = errors.New("username is required")
	ErrMissingPassword    = errors.New("password is required")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// Messages của JSON API
const (
	MsgLoginSuccessful     = "Login successful"
	MsgLogoutSuccessful    = "Logged out successfully"
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidUsername     = "Invalid username"
	MsgInvalidPassword     = "Invalid password"
	MsgNotLoggedIn         = "You are not logged in"
)

// Messages của login form (HTML)
const (
	MsgUsernameRequired  = "Username is required"
	MsgPasswordRequired  = "Password is required"
	MsgUsernameNotFound  = "Username not found"
	MsgIncorrectPassword = "Incorrect password"
)

// CredentialsError chuyển validation.Errors của LoginRequest thành sentinel
func CredentialsError(err error) error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	_, noUser := verrs["username"]
	_, noPass := verrs["password"]
	switch {
	case noUser && noPass:
		return ErrMissingCredentials
	case noUser:
		return ErrMissingUsername
	case noPass:
		return ErrMissingPassword
	default:
		return err
	}
}

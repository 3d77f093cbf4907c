package user

import "errors"

// Domain errors for user accounts

var (
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrNameTooShort       = errors.New("name must be at least 2 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

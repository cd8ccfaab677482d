package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("unknown role")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidAvatar      = errors.New("avatar must be an image file")
)

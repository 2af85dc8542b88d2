package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrProfileNotFound    = errors.New("freelancer profile not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnavailable        = errors.New("service unavailable")
)

package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTrackNotFound      = errors.New("track not found")
	ErrDayNotAuthored     = errors.New("daily content not authored")
	ErrDayOutOfRange      = errors.New("day number outside track duration")
)

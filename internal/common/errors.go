// Package common defines shared constants and sentinel errors used across
// client and server layers of mediaup. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Pipeline errors. Each file or chunk failure wraps exactly one of these.
	ErrCompression    = errors.New("compression failed")
	ErrDestination    = errors.New("destination unavailable")
	ErrTransfer       = errors.New("transfer failed")
	ErrIntegrity      = errors.New("checksum mismatch")
	ErrConfirm        = errors.New("confirmation rejected")
	ErrResumeMismatch = errors.New("resume target does not match file")
	ErrCancelled      = errors.New("cancelled")
)

// Package common defines shared constants and sentinel errors used across
// the client and server layers of eduauth. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Validation errors (local precondition checks, never reach storage).
	ErrorInvalidArgument = errors.New("invalid argument")

	// Repository-level errors.
	ErrorAlreadyExists = errors.New("already exists")
	ErrorUserNotFound  = errors.New("user not found")

	// Boundary errors (credentials, tokens, API keys).
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Role errors (name outside the closed enumeration).
	ErrUnknownRole = errors.New("unknown role")
)

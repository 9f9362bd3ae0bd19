// Package common defines shared constants and sentinel errors used across
// the storyshare server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation / input errors.
	ErrorValidation    = errors.New("validation error")
	ErrorInvalidUpload = errors.New("invalid upload")

	// Credential errors.
	ErrorDuplicateUser      = errors.New("user already exists")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

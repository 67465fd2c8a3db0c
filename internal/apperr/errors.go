// Package apperr defines the sentinel errors shared across Skald layers.
package apperr

import "errors"

var (
	// ErrNotFound reports a record that does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports a malformed request body or query parameter.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for a wrong password. The
	// client-visible text is the same regardless of which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized reports a missing, malformed, tampered, or expired
	// session token. Which of those it was is never surfaced to the client.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable reports a store connectivity or timeout failure.
	// Callers may retry; the service itself never does.
	ErrUnavailable = errors.New("store unavailable")

	// ErrIntegrity reports an unexpected constraint violation. Not retryable.
	ErrIntegrity = errors.New("store integrity violation")
)

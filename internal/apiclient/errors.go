package apiclient

import "errors"

var (
	// ErrUnavailable indicates the planning API is unreachable.
	ErrUnavailable = errors.New("planning api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("planning api request timed out")

	// ErrUnauthorized indicates the API rejected the token (401 or 403).
	ErrUnauthorized = errors.New("planning api rejected credentials")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("planning api resource not found")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("planning api retry attempts exhausted")

	// ErrNotConfigured indicates no base URL was set.
	ErrNotConfigured = errors.New("planning api url not configured")
)

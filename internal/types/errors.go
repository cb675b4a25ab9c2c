package types

import "errors"

var (
	// ErrInvalidInput marks a request rejected before any work was done.
	ErrInvalidInput = errors.New("invalid input")
	// ErrServiceUnavailable marks an unexpected failure reported generically to callers.
	ErrServiceUnavailable = errors.New("service unavailable")
)

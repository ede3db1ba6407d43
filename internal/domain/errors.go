package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput wraps validation failures that never reach storage.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRemoteUnavailable is returned when the remote catalog store fails.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

package domain

import "errors"

// Sentinel errors shared by the store, the services and the transports.
// Wrap them with fmt.Errorf("...: %w", err) and classify with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrExternalService   = errors.New("external service failure")
	ErrUnavailable       = errors.New("feature not configured")
)

package service

import "errors"

// Service layer errors for better error handling
var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists in a conflicting state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("invalid input")
	ErrForbidden         = errors.New("caller may not perform this action")

	// Session errors
	ErrSessionNotActive = errors.New("session is not active")
	ErrStaleFrame       = errors.New("frame timestamp is not newer than the previous frame")
)

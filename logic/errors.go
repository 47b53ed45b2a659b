package logic

import "errors"

// Failure taxonomy surfaced to controllers, matched with errors.Is and
// mapped to HTTP statuses at the API boundary.
var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrProviderFailure     = errors.New("completion provider failure")
	ErrValidation          = errors.New("validation error")
)

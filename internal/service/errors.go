package service

import "errors"

// Sentinel errors shared across services. Handlers translate these into
// HTTP status codes; services wrap them with context via %w.
var (
	ErrForbidden         = errors.New("insufficient permissions")
	ErrNotFound          = errors.New("record not found")
	ErrNoProfile         = errors.New("no active profile for caller")
	ErrValidation        = errors.New("invalid request")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNotCheckedIn      = errors.New("no check-in recorded today")
)

package handler

import (
	"errors"
	"net/http"

	"attendance/internal/auth"
	"attendance/internal/service"
	"attendance/internal/tenant"
)

// statusFromError maps service sentinels onto HTTP status codes. Anything
// unrecognized is a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNoProfile):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrAlreadyCheckedOut),
		errors.Is(err, service.ErrNotCheckedIn):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, tenant.ErrInvalidScope):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a malformed request parameter.
	ErrValidation = errors.New("validation failed")
	// ErrTenantMissing occurs when a request carries no verified tenant id.
	ErrTenantMissing = errors.New("tenant id missing")
)

package service

import "errors"

// Errors surfaced at the service boundary. Lower layer errors are translated
// into these before they leave a service method.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidOption  = errors.New("selected option does not belong to the selected menu item")
	ErrSessionExpired = errors.New("seat session expired, rescan required")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInvalidStatus  = errors.New("invalid order status")

	ErrInvalidIdempotencyKey = errors.New("idempotency key must not be blank")
)

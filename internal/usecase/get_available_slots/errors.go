package get_available_slots

import "errors"

var (
	// ErrServiceNotFound is returned when the requested service does not exist
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive is returned when the service is no longer offered
	ErrServiceInactive = errors.New("get_available_slots: service is not active")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("get_available_slots: internal error")
)

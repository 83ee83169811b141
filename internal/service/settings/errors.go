package settings

import "errors"

var (
	// ErrInvalidInput is returned when the policy values fail validation
	ErrInvalidInput = errors.New("invalid policy data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)

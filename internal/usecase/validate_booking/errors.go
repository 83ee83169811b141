package validate_booking

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data. Unlike rule
	// violations, this is a caller defect, not a user-facing outcome.
	ErrInvalidInput = errors.New("validate_booking: invalid input data")
)

package preview_payout

import "errors"

var (
	// ErrBarberNotConfigured is returned when the barber has no record with
	// commission rates; a payout cannot be calculated without them
	ErrBarberNotConfigured = errors.New("preview_payout: barber has no commission rates configured")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("preview_payout: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("preview_payout: internal error")
)

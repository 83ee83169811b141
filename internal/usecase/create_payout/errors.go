package create_payout

import "errors"

var (
	// ErrBarberNotConfigured is returned when the barber has no record with
	// commission rates
	ErrBarberNotConfigured = errors.New("create_payout: barber has no commission rates configured")

	// ErrOverlappingPayout is returned when the period intersects an
	// existing payout for the barber and force was not set
	ErrOverlappingPayout = errors.New("create_payout: period overlaps an existing payout")

	// ErrOverrideNoteRequired is returned when the paid amount differs from
	// the calculated amount by more than a cent and no note was provided
	ErrOverrideNoteRequired = errors.New("create_payout: override note required when paid amount differs from calculated amount")

	// ErrNothingToPay is returned when the period holds no unsettled items
	ErrNothingToPay = errors.New("create_payout: no unsettled revenue in period")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("create_payout: invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("create_payout: internal error")
)

package policy

import "errors"

var (
	// ErrPolicyNotFound is returned when no shop policy row exists
	ErrPolicyNotFound = errors.New("policy.repository: shop policy not found")

	// ErrOverrideNotFound is returned when the barber has no policy record
	ErrOverrideNotFound = errors.New("policy.repository: barber policy not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("policy.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("policy.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("policy.repository: failed to scan row")
)

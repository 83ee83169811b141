package service

import "errors"

var (
	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("service.repository: service not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("service.repository: failed to scan row")
)

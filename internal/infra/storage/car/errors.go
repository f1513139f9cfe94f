package car

import "errors"

var (
	// ErrCarNotFound is returned when a car does not exist.
	ErrCarNotFound = errors.New("car.repository: car not found")

	// ErrBuildQuery is returned when building a SQL query fails.
	ErrBuildQuery = errors.New("car.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL query fails.
	ErrExecQuery = errors.New("car.repository: failed to execute query")

	// ErrScanRow is returned when scanning a query result fails.
	ErrScanRow = errors.New("car.repository: failed to scan row")
)

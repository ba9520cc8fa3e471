package postgres

import "errors"

var (
	// ErrPoolNil is returned when New is called with a nil database connection.
	ErrPoolNil = errors.New("database connection cannot be nil")

	// ErrFailedToParseConnString is returned when the connection URL is invalid.
	ErrFailedToParseConnString = errors.New("failed to parse postgres connection string")

	// ErrFailedToOpenConnection is returned when the database stays unreachable
	// after all retry attempts.
	ErrFailedToOpenConnection = errors.New("failed to open postgres connection")

	// ErrFailedToInitSchema is returned when the snapshot table cannot be created.
	ErrFailedToInitSchema = errors.New("failed to initialize snapshot schema")

	// ErrReadFailed is returned when reading the snapshot row fails.
	ErrReadFailed = errors.New("failed to read snapshot from postgres")

	// ErrWriteFailed is returned when writing the snapshot row fails.
	ErrWriteFailed = errors.New("failed to write snapshot to postgres")
)

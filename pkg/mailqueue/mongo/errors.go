package mongo

import "errors"

var (
	// ErrDatabaseNil is returned when New is called with a nil database handle.
	ErrDatabaseNil = errors.New("database handle cannot be nil")

	// ErrFailedToConnect is returned when the server stays unreachable after
	// all retry attempts.
	ErrFailedToConnect = errors.New("failed to connect to mongo")

	// ErrReadFailed is returned when reading the snapshot document fails.
	ErrReadFailed = errors.New("failed to read snapshot from mongo")

	// ErrWriteFailed is returned when writing the snapshot document fails.
	ErrWriteFailed = errors.New("failed to write snapshot to mongo")
)

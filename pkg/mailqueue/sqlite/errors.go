package sqlite

import "errors"

var (
	// ErrDatabaseNil is returned when New is called with a nil database handle.
	ErrDatabaseNil = errors.New("database handle cannot be nil")

	// ErrEmptyPath is returned when Open is called with an empty database path.
	ErrEmptyPath = errors.New("database path cannot be empty")

	// ErrFailedToOpenDatabase is returned when the database file cannot be opened.
	ErrFailedToOpenDatabase = errors.New("failed to open sqlite database")

	// ErrFailedToInitSchema is returned when the snapshot table cannot be created.
	ErrFailedToInitSchema = errors.New("failed to initialize snapshot schema")

	// ErrReadFailed is returned when reading the snapshot row fails.
	ErrReadFailed = errors.New("failed to read snapshot from sqlite")

	// ErrWriteFailed is returned when writing the snapshot row fails.
	ErrWriteFailed = errors.New("failed to write snapshot to sqlite")
)

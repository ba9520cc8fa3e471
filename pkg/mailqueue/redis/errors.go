package redis

import "errors"

var (
	// ErrClientNil is returned when a nil redis client is provided
	ErrClientNil = errors.New("redis client cannot be nil")

	// ErrFailedToParseConnString is returned when the connection URL is invalid
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")

	// ErrNotReady is returned when the server cannot be reached within the retry budget
	ErrNotReady = errors.New("redis server is not ready")

	// ErrReadFailed is returned when reading the snapshot key fails
	ErrReadFailed = errors.New("failed to read snapshot from redis")

	// ErrWriteFailed is returned when writing the snapshot key fails
	ErrWriteFailed = errors.New("failed to write snapshot to redis")
)

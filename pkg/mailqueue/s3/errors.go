package s3

import "errors"

var (
	// ErrInvalidConfig is returned when the bucket or region is missing.
	ErrInvalidConfig = errors.New("bucket and region are required")

	// ErrFailedToLoadConfig is returned when the AWS SDK configuration cannot
	// be assembled.
	ErrFailedToLoadConfig = errors.New("failed to load aws config")

	// ErrReadFailed is returned when fetching the snapshot object fails.
	ErrReadFailed = errors.New("failed to read snapshot from s3")

	// ErrWriteFailed is returned when uploading the snapshot object fails.
	ErrWriteFailed = errors.New("failed to write snapshot to s3")
)

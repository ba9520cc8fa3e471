package mailqueue

import "errors"

// Common errors
var (
	// ErrSnapshotStoreNil is returned when a nil snapshot store is provided
	ErrSnapshotStoreNil = errors.New("snapshot store cannot be nil")

	// ErrNoRecipients is returned when enqueueing a message without recipients
	ErrNoRecipients = errors.New("message must have at least one recipient")

	// ErrEmptyRecipient is returned when a recipient address is blank
	ErrEmptyRecipient = errors.New("recipient address cannot be empty")

	// ErrEmptyContent is returned when a message has neither subject nor body
	ErrEmptyContent = errors.New("message must have a subject or a body")

	// ErrNoSender is returned when draining without a registered sender
	ErrNoSender = errors.New("no sender registered")

	// ErrClosed is returned when operating on a closed queue
	ErrClosed = errors.New("queue is closed")

	// ErrNoSnapshot is returned by snapshot stores when no snapshot exists yet
	ErrNoSnapshot = errors.New("no snapshot found")

	// ErrEmptySnapshotPath is returned when a file snapshot store gets an empty path
	ErrEmptySnapshotPath = errors.New("snapshot path cannot be empty")

	// ErrSnapshotCorrupt is returned when a snapshot cannot be decoded
	ErrSnapshotCorrupt = errors.New("snapshot is corrupt")
)

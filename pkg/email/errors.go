package email

import "errors"

// Common errors
var (
	// ErrInvalidConfig is returned when a sender is created with incomplete
	// or malformed configuration
	ErrInvalidConfig = errors.New("invalid email configuration")

	// ErrInvalidMessage is returned when a message cannot be delivered by any
	// transport, e.g. a malformed recipient address
	ErrInvalidMessage = errors.New("invalid email message")

	// ErrFailedToSendEmail is returned when the transport rejects a delivery
	ErrFailedToSendEmail = errors.New("failed to send email")
)

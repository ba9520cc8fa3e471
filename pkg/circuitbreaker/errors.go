package circuitbreaker

import "errors"

// Common errors
var (
	// ErrEmptyName is returned when a breaker is created without a name
	ErrEmptyName = errors.New("circuit breaker name cannot be empty")

	// ErrOpen is returned when the breaker is open and rejects a call
	ErrOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests is returned when the half-open probe budget is exhausted
	ErrTooManyRequests = errors.New("circuit breaker half-open request limit reached")
)

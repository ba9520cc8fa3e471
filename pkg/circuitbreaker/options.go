package circuitbreaker

import "log/slog"

type breakerOptions struct {
	logger *slog.Logger
}

// Option configures a Breaker during construction
type Option func(*breakerOptions)

// WithLogger sets the logger used for state transitions and subscriber panics
func WithLogger(logger *slog.Logger) Option {
	return func(o *breakerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

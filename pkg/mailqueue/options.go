package mailqueue

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

type queueOptions struct {
	cfg           Config
	logger        *slog.Logger
	breaker       CircuitBreaker
	sender        Sender
	meterProvider metric.MeterProvider
}

// Option configures a Queue during construction
type Option func(*queueOptions)

// WithConfig sets the retry and pacing policy. Zero fields fall back to
// their defaults.
func WithConfig(cfg Config) Option {
	return func(o *queueOptions) {
		o.cfg = cfg
	}
}

// WithLogger sets the logger for queue lifecycle and delivery events
func WithLogger(logger *slog.Logger) Option {
	return func(o *queueOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCircuitBreaker wires the failure detector the queue consults before
// and during drains. The queue subscribes to its state changes and drains
// automatically when the breaker closes.
func WithCircuitBreaker(cb CircuitBreaker) Option {
	return func(o *queueOptions) {
		o.breaker = cb
	}
}

// WithSender registers the delivery function at construction time.
// Equivalent to calling RegisterSender afterwards.
func WithSender(s Sender) Option {
	return func(o *queueOptions) {
		o.sender = s
	}
}

// WithMeterProvider sets the OpenTelemetry meter provider for queue metrics.
// Defaults to the global provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *queueOptions) {
		o.meterProvider = provider
	}
}

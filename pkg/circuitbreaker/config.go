package circuitbreaker

import "time"

// Config holds the tripping and recovery policy for a breaker
type Config struct {
	// MaxRequests is the number of probe calls allowed while half-open.
	MaxRequests uint32 `env:"BREAKER_MAX_REQUESTS" envDefault:"1"`
	// Interval is the cyclic period in the closed state after which failure
	// counts are cleared. Zero keeps counts for the whole closed period.
	Interval time.Duration `env:"BREAKER_INTERVAL" envDefault:"60s"`
	// Timeout is how long the breaker stays open before moving to half-open.
	Timeout time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
	// ConsecutiveFailures trips the breaker regardless of ratio.
	ConsecutiveFailures uint32 `env:"BREAKER_CONSECUTIVE_FAILURES" envDefault:"5"`
	// FailureRatio trips the breaker once MinRequests have been observed.
	FailureRatio float64 `env:"BREAKER_FAILURE_RATIO" envDefault:"0.6"`
	// MinRequests is the request volume required before FailureRatio applies.
	MinRequests uint32 `env:"BREAKER_MIN_REQUESTS" envDefault:"10"`
}

func (c Config) applyDefaults() Config {
	if c.MaxRequests == 0 {
		c.MaxRequests = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.ConsecutiveFailures == 0 {
		c.ConsecutiveFailures = 5
	}
	if c.FailureRatio <= 0 {
		c.FailureRatio = 0.6
	}
	if c.MinRequests == 0 {
		c.MinRequests = 10
	}
	return c
}

package mailqueue

import "time"

// Config holds the retry and pacing policy for the queue
type Config struct {
	// MaxAttempts is the delivery attempt budget per message. A message whose
	// delivery still fails on its MaxAttempts-th attempt is evicted as a
	// permanent failure.
	MaxAttempts int `env:"MAILQUEUE_MAX_ATTEMPTS" envDefault:"5"`

	// SendPause is the fixed pause between messages within a drain. It paces
	// load on the downstream provider; it is not a retry backoff.
	SendPause time.Duration `env:"MAILQUEUE_SEND_PAUSE" envDefault:"1s"`

	// RecoveryDelay is how long the queue waits after the circuit breaker
	// closes before starting an automatic drain.
	RecoveryDelay time.Duration `env:"MAILQUEUE_RECOVERY_DELAY" envDefault:"5s"`
}

func (c Config) applyDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.SendPause <= 0 {
		c.SendPause = time.Second
	}
	if c.RecoveryDelay <= 0 {
		c.RecoveryDelay = 5 * time.Second
	}
	return c
}

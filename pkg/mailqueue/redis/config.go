package redis

import "time"

// Config holds the connection settings for the Redis snapshot store
type Config struct {
	// ConnectionURL is the server URL, e.g. "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"MAILQUEUE_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// Key is the Redis key the snapshot is stored under.
	Key string `env:"MAILQUEUE_REDIS_KEY" envDefault:"mailqueue:snapshot"`
	// RetryAttempts is the number of connection attempts before giving up.
	RetryAttempts int `env:"MAILQUEUE_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	// RetryInterval is the wait between connection attempts.
	RetryInterval time.Duration `env:"MAILQUEUE_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	// ConnectTimeout bounds the whole connection phase.
	ConnectTimeout time.Duration `env:"MAILQUEUE_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

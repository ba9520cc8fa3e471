package postgres

import "time"

// Config contains PostgreSQL snapshot store configuration.
type Config struct {
	// ConnectionURL is the database connection string.
	ConnectionURL string `env:"MAILQUEUE_POSTGRES_URL,required"`
	// Name distinguishes queues sharing one snapshot table.
	Name string `env:"MAILQUEUE_POSTGRES_NAME" envDefault:"default"`

	RetryAttempts int           `env:"MAILQUEUE_POSTGRES_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"MAILQUEUE_POSTGRES_RETRY_INTERVAL" envDefault:"5s"`
}

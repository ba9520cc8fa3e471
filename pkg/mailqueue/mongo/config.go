package mongo

import "time"

// Config contains MongoDB snapshot store configuration.
type Config struct {
	// ConnectionURL is the mongodb:// connection string.
	ConnectionURL string `env:"MAILQUEUE_MONGO_URL,required"`
	// Database holds the snapshot collection.
	Database string `env:"MAILQUEUE_MONGO_DATABASE" envDefault:"mailout"`
	// Collection stores one document per queue name.
	Collection string `env:"MAILQUEUE_MONGO_COLLECTION" envDefault:"mailqueue_snapshots"`
	// Name distinguishes queues sharing one collection.
	Name string `env:"MAILQUEUE_MONGO_NAME" envDefault:"default"`

	ConnectTimeout time.Duration `env:"MAILQUEUE_MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"MAILQUEUE_MONGO_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"MAILQUEUE_MONGO_RETRY_INTERVAL" envDefault:"5s"`
}

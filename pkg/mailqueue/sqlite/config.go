package sqlite

// Config contains SQLite snapshot store configuration.
type Config struct {
	// Path is the database file location; parent directories are created.
	Path string `env:"MAILQUEUE_SQLITE_PATH" envDefault:"mailqueue.db"`
	// Name distinguishes queues sharing one database file.
	Name string `env:"MAILQUEUE_SQLITE_NAME" envDefault:"default"`
}

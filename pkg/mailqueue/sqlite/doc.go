// Package sqlite provides a SQLite-backed snapshot store for mailqueue.
//
// Snapshots live in a single mailqueue_snapshots table keyed by queue name,
// so several queues can share one database file. The store opens the file
// with WAL journaling and a busy timeout, creating the schema on first use.
//
// # Usage
//
//	store, err := sqlite.Open(ctx, sqlite.Config{Path: "var/mailqueue.db"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	queue, err := mailqueue.New(store, mailqueue.WithSender(sender))
package sqlite

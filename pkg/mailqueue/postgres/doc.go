// Package postgres provides a PostgreSQL-backed snapshot store for mailqueue.
//
// Snapshots live in a mailqueue_snapshots table keyed by queue name and are
// replaced atomically with an upsert, so several queues (or several services)
// can share one database. Connect dials with retries the way services expect
// during rolling restarts; New wraps a pool the application already owns.
//
// # Usage
//
//	store, err := postgres.Connect(ctx, postgres.Config{
//		ConnectionURL: os.Getenv("DATABASE_URL"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	queue, err := mailqueue.New(store, mailqueue.WithSender(sender))
package postgres

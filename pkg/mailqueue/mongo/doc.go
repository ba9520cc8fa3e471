// Package mongo provides a MongoDB-backed snapshot store for mailqueue.
//
// Snapshots live as a single document per queue name in a configurable
// collection, replaced with an upsert on every write. Connect retries until
// the server answers a ping, matching how services behave during rolling
// restarts.
//
// # Usage
//
//	store, err := mongo.Connect(ctx, mongo.Config{
//		ConnectionURL: "mongodb://localhost:27017",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close(context.Background())
//
//	queue, err := mailqueue.New(store, mailqueue.WithSender(sender))
package mongo

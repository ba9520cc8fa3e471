// Package s3 provides an S3-backed snapshot store for mailqueue.
//
// Snapshots live under a single object key, written with PutObject and read
// with GetObject. The store works against Amazon S3 and S3-compatible
// services such as MinIO or R2 via a custom endpoint.
//
// # Usage
//
//	store, err := s3.New(ctx, s3.Config{
//		Bucket: "acme-mail",
//		Region: "us-east-1",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	queue, err := mailqueue.New(store, mailqueue.WithSender(sender))
//
// Pass WithClient to inject a pre-configured or mock client in tests.
package s3

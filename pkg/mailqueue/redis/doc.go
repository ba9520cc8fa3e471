// Package redis provides a Redis-backed snapshot store for mailqueue.
// Snapshots live under a single key, written with SET and read with GET, so
// any Redis deployment reachable by URL can mirror the queue.
package redis

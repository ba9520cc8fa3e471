// Package mailqueue provides a resilient outbound email queue: a holding
// area for messages that cannot currently be delivered because the
// downstream provider is failing, plus the drain logic that empties it once
// the provider recovers.
//
// The package is organised around a small set of collaborators:
//
//   - Queue          — the public surface: enqueue, list, stats, remove, clear, drain
//   - Sender         — the delivery function a drain pushes messages through
//   - CircuitBreaker — the failure detector consulted before and during drains
//   - SnapshotStore  — byte-oriented persistence mirroring the queue across restarts
//
// # Architecture
//
//  1. Producers enqueue messages; each lands in an in-process store and is
//     mirrored to the SnapshotStore by a background persister. Persistence is
//     best-effort: a failing store is logged and never blocks or fails a
//     mutation, and the in-memory queue stays authoritative.
//  2. A drain walks a point-in-time snapshot of the queue oldest-first,
//     re-checking the circuit breaker before every message. Delivery charges
//     an attempt before the send runs, so a crash mid-send still counts it.
//  3. A message leaves the queue only by delivery, by explicit removal, or by
//     exhausting its attempt budget (a permanent failure). Terminal outcomes
//     are visible through lifetime counters and logs, never as lingering
//     store entries.
//  4. When the circuit breaker transitions to closed, the queue schedules an
//     automatic drain after a stabilization delay. Delivery is at-least-once:
//     a crash between a send and its snapshot write may replay a message.
//
// # Usage
//
//	store, err := mailqueue.NewFileSnapshotStore("/var/lib/app/mailqueue.json")
//	if err != nil {
//	    return err
//	}
//
//	q, err := mailqueue.New(store,
//	    mailqueue.WithCircuitBreaker(breaker),
//	    mailqueue.WithSender(sender),
//	)
//	if err != nil {
//	    return err
//	}
//	defer q.Close(context.Background())
//
//	id, err := q.Enqueue(ctx, mailqueue.EnqueueParams{
//	    Recipients: []string{"user@example.com"},
//	    Subject:    "Your ticket",
//	    HTMLBody:   "<h1>See you there</h1>",
//	})
//
// Draining normally happens automatically on breaker recovery; call Drain
// directly to force a pass:
//
//	result, err := q.Drain(ctx)
//
// # Error Handling
//
// Package-level sentinel errors (ErrNoRecipients, ErrNoSender, ErrClosed,
// ErrNoSnapshot, ...) signal invariant violations and can be checked with
// errors.Is. Delivery errors never surface from Enqueue or Drain: transient
// failures keep the message queued for a later pass, and permanent ones are
// logged and counted.
package mailqueue

package mailqueue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailout/pkg/circuitbreaker"
	"github.com/dmitrymomot/mailout/pkg/logger"
)

// Sender delivers a single message to its recipients. Implementations for
// Postmark, SMTP, and local development live in pkg/email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, msg Message) error

// Send calls f(ctx, msg).
func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// CircuitBreaker is the failure detector the queue consults before and
// during drains. *circuitbreaker.Breaker satisfies it.
type CircuitBreaker interface {
	State() circuitbreaker.State
	Subscribe(fn func(circuitbreaker.StateChange))
}

// DrainResult reports the outcome of one drain pass.
type DrainResult struct {
	// Sent is the number of messages delivered during this pass.
	Sent int
	// Failed is the number of messages evicted as permanent failures during
	// this pass.
	Failed int
}

// Stats is a point-in-time view of the queue.
type Stats struct {
	// QueuedCount is the number of messages currently queued.
	QueuedCount int
	// TotalQueued, TotalSent, and TotalFailed are lifetime counters. They
	// survive Clear and reset only with the process.
	TotalQueued uint64
	TotalSent   uint64
	TotalFailed uint64
	// OldestQueuedAt is the QueuedAt of the message that would drain first,
	// nil when the queue is empty.
	OldestQueuedAt *time.Time
	// Processing reports whether a drain pass is currently running.
	Processing bool
}

// Queue holds outbound messages that cannot currently be delivered and
// drains them once the downstream provider recovers. Mutations are mirrored
// to a SnapshotStore so queued messages survive restarts.
type Queue struct {
	store     *store
	snapshots SnapshotStore
	cfg       Config
	logger    *slog.Logger
	metrics   queueMetrics
	breaker   CircuitBreaker

	senderMu sync.RWMutex
	sender   Sender

	// processing is the single-flight guard for Drain.
	processing atomic.Bool

	totalQueued atomic.Uint64
	totalSent   atomic.Uint64
	totalFailed atomic.Uint64

	persistCh chan struct{}
	done      chan struct{}
	wg        sync.WaitGroup
	closeMu   sync.Mutex // protects closed state and WaitGroup operations
	closed    atomic.Bool
}

// New creates a queue mirrored to the given snapshot store. Any snapshot
// written by a previous run is loaded before the queue accepts traffic; a
// missing or corrupt snapshot starts the queue empty. If a circuit breaker
// is configured, the queue subscribes to its state changes and drains
// automatically once the breaker closes.
func New(snapshots SnapshotStore, opts ...Option) (*Queue, error) {
	if snapshots == nil {
		return nil, ErrSnapshotStoreNil
	}

	options := &queueOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	metrics, err := newQueueMetrics(options.meterProvider)
	if err != nil {
		return nil, err
	}

	q := &Queue{
		store:     newStore(),
		snapshots: snapshots,
		cfg:       options.cfg.applyDefaults(),
		logger:    options.logger,
		metrics:   metrics,
		breaker:   options.breaker,
		sender:    options.sender,
		persistCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	q.rehydrate(context.Background())

	if q.breaker != nil {
		q.breaker.Subscribe(q.onStateChange)
	}

	q.wg.Add(1)
	go q.persistLoop()

	return q, nil
}

// Enqueue adds a message to the queue and returns its id. The message is
// mirrored to the snapshot store asynchronously; a persistence failure is
// logged and never surfaces here, so enqueueing succeeds even while the
// snapshot store is down.
func (q *Queue) Enqueue(ctx context.Context, params EnqueueParams) (uuid.UUID, error) {
	if q.closed.Load() {
		return uuid.Nil, ErrClosed
	}
	if err := params.Validate(); err != nil {
		return uuid.Nil, err
	}

	msg := newMessage(params, time.Now())
	q.store.insert(msg)
	q.totalQueued.Add(1)
	q.metrics.queued.Add(ctx, 1)
	q.metrics.depth.Record(ctx, int64(q.store.size()))

	q.logger.Info("message queued",
		logger.MessageID(msg.ID),
		logger.Recipients(len(msg.Recipients)),
		slog.Int("queued", q.store.size()))

	q.requestPersist()

	return msg.ID, nil
}

// List returns a copy of all queued messages ordered by QueuedAt ascending,
// with enqueue order breaking ties.
func (q *Queue) List() []Message {
	return q.store.list()
}

// Stats returns current queue depth, lifetime counters, and drain status.
func (q *Queue) Stats() Stats {
	return Stats{
		QueuedCount:    q.store.size(),
		TotalQueued:    q.totalQueued.Load(),
		TotalSent:      q.totalSent.Load(),
		TotalFailed:    q.totalFailed.Load(),
		OldestQueuedAt: q.store.oldest(),
		Processing:     q.processing.Load(),
	}
}

// Remove deletes one message regardless of its attempt count. It reports
// whether the message was present; removing an unknown id is not an error
// and touches no counters.
func (q *Queue) Remove(id uuid.UUID) bool {
	if !q.store.remove(id) {
		return false
	}

	q.logger.Info("message removed", logger.MessageID(id))
	q.requestPersist()
	return true
}

// Clear deletes all queued messages. Lifetime counters are untouched: they
// track totals for the life of the process, not current contents.
func (q *Queue) Clear() {
	count := q.store.clear()
	q.metrics.cleared.Add(context.Background(), int64(count))
	q.metrics.depth.Record(context.Background(), 0)

	q.logger.Info("queue cleared", slog.Int("dropped", count))
	q.requestPersist()
}

// RegisterSender installs the delivery function used by Drain. At most one
// sender is active; registering again replaces the previous one.
func (q *Queue) RegisterSender(s Sender) {
	q.senderMu.Lock()
	q.sender = s
	q.senderMu.Unlock()
}

func (q *Queue) currentSender() Sender {
	q.senderMu.RLock()
	defer q.senderMu.RUnlock()

	return q.sender
}

// Drain makes one delivery pass over the messages queued at the time of the
// call, oldest first. Messages enqueued while the pass runs wait for the
// next one.
//
// A drain already in progress makes this call a no-op returning zero counts,
// as does an empty queue or a circuit breaker that is not closed. The
// breaker is re-checked before every message; if it leaves the closed state
// mid-pass, the remaining messages stay queued. Each delivered or
// permanently failed message is evicted as it settles, and a fixed pause
// separates consecutive sends. The context is handed to the sender; it does
// not cancel the pass itself.
func (q *Queue) Drain(ctx context.Context) (DrainResult, error) {
	if !q.processing.CompareAndSwap(false, true) {
		return DrainResult{}, nil
	}
	defer q.processing.Store(false)

	// Synchronize with Close so the WaitGroup never grows after shutdown
	// begins.
	q.closeMu.Lock()
	if q.closed.Load() {
		q.closeMu.Unlock()
		return DrainResult{}, ErrClosed
	}
	q.wg.Add(1)
	q.closeMu.Unlock()
	defer q.wg.Done()

	if q.store.size() == 0 {
		return DrainResult{}, nil
	}
	if !q.breakerClosed() {
		q.logger.Debug("drain skipped, circuit breaker not closed")
		return DrainResult{}, nil
	}

	sender := q.currentSender()
	if sender == nil {
		return DrainResult{}, ErrNoSender
	}

	pending := q.store.list()
	q.logger.Info("draining queue", slog.Int("pending", len(pending)))
	start := time.Now()

	var result DrainResult
	for i, msg := range pending {
		if !q.breakerClosed() {
			q.logger.Warn("drain interrupted, circuit breaker no longer closed",
				slog.Int("remaining", len(pending)-i))
			break
		}

		attempt, ok := q.store.beginAttempt(msg.ID, time.Now())
		if !ok {
			continue // removed since the snapshot was taken
		}

		if err := sender.Send(ctx, attempt); err != nil {
			q.store.recordError(attempt.ID, err.Error())

			if attempt.Attempts >= q.cfg.MaxAttempts {
				if q.store.remove(attempt.ID) {
					q.totalFailed.Add(1)
					result.Failed++
					q.metrics.failed.Add(ctx, 1)
					q.logger.Error("message permanently failed, evicting",
						logger.MessageID(attempt.ID),
						logger.Attempts(attempt.Attempts),
						logger.Error(err))
				}
			} else {
				q.logger.Warn("message delivery failed, will retry",
					logger.MessageID(attempt.ID),
					logger.Attempts(attempt.Attempts),
					slog.Int("max_attempts", q.cfg.MaxAttempts),
					logger.Error(err))
			}
		} else {
			q.store.remove(attempt.ID)
			q.totalSent.Add(1)
			result.Sent++
			q.metrics.sent.Add(ctx, 1)
			q.logger.Info("message delivered",
				logger.MessageID(attempt.ID),
				logger.Attempts(attempt.Attempts))
		}

		if i < len(pending)-1 {
			if !q.pause(q.cfg.SendPause) {
				break // queue is closing
			}
		}
	}

	q.metrics.depth.Record(ctx, int64(q.store.size()))
	q.metrics.drainDuration.Record(ctx, time.Since(start).Seconds())
	q.requestPersist()

	q.logger.Info("drain finished",
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed),
		slog.Int("queued", q.store.size()))

	return result, nil
}

// Close stops the queue: no further messages are accepted, the automatic
// drain trigger is disarmed, and an in-progress drain is cut short at the
// next message boundary. Close waits for background work to settle (bounded
// by ctx) and writes a final snapshot. It is safe to call more than once.
func (q *Queue) Close(ctx context.Context) error {
	q.closeMu.Lock()
	if q.closed.Load() {
		q.closeMu.Unlock()
		return nil
	}
	q.closed.Store(true)
	close(q.done)
	q.closeMu.Unlock()

	settled := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(settled)
	}()

	select {
	case <-settled:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Final synchronous snapshot so nothing queued is lost across restarts.
	q.persist(ctx)

	q.logger.Info("mail queue closed", slog.Int("queued", q.store.size()))
	return nil
}

func (q *Queue) breakerClosed() bool {
	if q.breaker == nil {
		return true
	}
	return q.breaker.State() == circuitbreaker.StateClosed
}

// pause blocks for d or until the queue starts closing, reporting whether
// the full pause elapsed. No store lock is held here, so enqueue, remove,
// and stats calls proceed while a drain is pausing.
func (q *Queue) pause(d time.Duration) bool {
	select {
	case <-q.done:
		return false
	case <-time.After(d):
		return true
	}
}

// onStateChange arms an automatic drain when the circuit breaker closes.
// The delay gives the breaker's close a moment to stabilize before queued
// load resumes.
func (q *Queue) onStateChange(change circuitbreaker.StateChange) {
	if change.To != circuitbreaker.StateClosed {
		return
	}
	if q.currentSender() == nil || q.store.size() == 0 {
		return
	}

	q.closeMu.Lock()
	if q.closed.Load() {
		q.closeMu.Unlock()
		return
	}
	q.wg.Add(1)
	q.closeMu.Unlock()

	q.logger.Info("circuit breaker closed, scheduling drain",
		logger.Breaker(change.Name),
		slog.Duration("delay", q.cfg.RecoveryDelay))

	go func() {
		defer q.wg.Done()

		select {
		case <-q.done:
			return
		case <-time.After(q.cfg.RecoveryDelay):
		}

		if _, err := q.Drain(context.Background()); err != nil && !errors.Is(err, ErrClosed) {
			q.logger.Error("automatic drain failed", logger.Error(err))
		}
	}()
}

// rehydrate loads the previous run's snapshot into the store. Any read or
// decode problem is logged and leaves the queue empty; it never fails
// construction.
func (q *Queue) rehydrate(ctx context.Context) {
	data, err := q.snapshots.ReadSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			q.logger.Warn("failed to read queue snapshot, starting empty",
				logger.Error(err))
		}
		return
	}

	msgs, err := decodeSnapshot(data)
	if err != nil {
		q.logger.Warn("discarding unreadable queue snapshot",
			logger.Error(err))
		return
	}

	q.store.restore(msgs)
	if len(msgs) > 0 {
		q.logger.Info("restored queued messages from snapshot",
			slog.Int("count", len(msgs)))
	}
}

func (q *Queue) persistLoop() {
	defer q.wg.Done()

	for {
		select {
		case <-q.done:
			return
		case <-q.persistCh:
			q.persist(context.Background())
		}
	}
}

// requestPersist asks the persister goroutine for a snapshot write without
// blocking the caller. Back-to-back requests coalesce into one write.
func (q *Queue) requestPersist() {
	select {
	case q.persistCh <- struct{}{}:
	default:
	}
}

func (q *Queue) persist(ctx context.Context) {
	data, err := encodeSnapshot(q.store.list(), time.Now())
	if err != nil {
		q.logger.Error("failed to encode queue snapshot",
			logger.Error(err))
		return
	}
	if err := q.snapshots.WriteSnapshot(ctx, data); err != nil {
		q.logger.Error("failed to persist queue snapshot",
			logger.Error(err))
	}
}

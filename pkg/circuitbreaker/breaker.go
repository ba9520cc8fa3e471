package circuitbreaker

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/sony/gobreaker"
)

// State is the observable breaker state.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
	StateUnknown  State = "unknown"
)

// StateChange describes one breaker transition delivered to subscribers.
type StateChange struct {
	Name string
	From State
	To   State
}

// Counts mirrors the rolling statistics of the underlying breaker.
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker guards calls to a single downstream service.
type Breaker struct {
	name   string
	cfg    Config
	logger *slog.Logger

	mu        sync.RWMutex // protects cb and listeners
	cb        *gobreaker.CircuitBreaker
	listeners []func(StateChange)
}

// New creates a breaker for the named downstream service.
func New(name string, cfg Config, opts ...Option) (*Breaker, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	options := &breakerOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	b := &Breaker{
		name:   name,
		cfg:    cfg.applyDefaults(),
		logger: options.logger,
	}
	b.cb = gobreaker.NewCircuitBreaker(b.settings())

	return b, nil
}

func (b *Breaker) settings() gobreaker.Settings {
	cfg := b.cfg

	return gobreaker.Settings{
		Name:        b.name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
				return true
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			b.handleStateChange(name, convertState(from), convertState(to))
		},
	}
}

// Name returns the downstream service name this breaker guards.
func (b *Breaker) Name() string {
	return b.name
}

// Execute runs fn through the breaker. While the breaker is open the call is
// rejected with ErrOpen without invoking fn; while half-open, calls beyond the
// probe budget are rejected with ErrTooManyRequests. Errors returned by fn
// itself pass through unchanged.
func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	b.mu.RLock()
	cb := b.cb
	b.mu.RUnlock()

	result, err := cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return nil, errors.Join(ErrOpen, err)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, errors.Join(ErrTooManyRequests, err)
	}

	return result, err
}

// State reports the current breaker state.
func (b *Breaker) State() State {
	b.mu.RLock()
	cb := b.cb
	b.mu.RUnlock()

	return convertState(cb.State())
}

// Counts reports the rolling request statistics of the current generation.
func (b *Breaker) Counts() Counts {
	b.mu.RLock()
	cb := b.cb
	b.mu.RUnlock()

	counts := cb.Counts()

	return Counts{
		Requests:             counts.Requests,
		TotalSuccesses:       counts.TotalSuccesses,
		TotalFailures:        counts.TotalFailures,
		ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
		ConsecutiveFailures:  counts.ConsecutiveFailures,
	}
}

// Subscribe registers fn to receive state-change notifications. Each
// notification is delivered on its own goroutine so a slow subscriber cannot
// block breaker operations; panics in fn are recovered and logged.
// Subscriptions cannot be removed.
func (b *Breaker) Subscribe(fn func(StateChange)) {
	if fn == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(b.listeners, fn)
}

// Reset replaces the underlying breaker with a fresh closed one, discarding
// all counts. No state-change notification is emitted because the replacement
// is not a transition.
func (b *Breaker) Reset() {
	b.mu.Lock()
	b.cb = gobreaker.NewCircuitBreaker(b.settings())
	b.mu.Unlock()

	b.logger.Info("circuit breaker reset", slog.String("name", b.name))
}

func (b *Breaker) handleStateChange(name string, from, to State) {
	b.logger.Info("circuit breaker state changed",
		slog.String("name", name),
		slog.String("from", string(from)),
		slog.String("to", string(to)))

	change := StateChange{Name: name, From: from, To: to}

	b.mu.RLock()
	listeners := make([]func(StateChange), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	for _, fn := range listeners {
		go func(fn func(StateChange)) {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("circuit breaker subscriber panicked",
						slog.String("name", name),
						slog.Any("panic", r))
				}
			}()

			fn(change)
		}(fn)
	}
}

func convertState(state gobreaker.State) State {
	switch state {
	case gobreaker.StateClosed:
		return StateClosed
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateUnknown
	}
}

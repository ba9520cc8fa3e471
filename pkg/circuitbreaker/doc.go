// Package circuitbreaker provides a three-state failure detector for guarding
// calls to unreliable downstream services.
//
// The package wraps sony/gobreaker behind a small surface: a Breaker executes
// calls while tracking failures, opens after too many of them, and probes
// recovery through a half-open state. Consumers that only need to observe the
// breaker (rather than execute through it) use State and Subscribe.
//
// # Usage
//
//	cb, err := circuitbreaker.New("email", circuitbreaker.Config{})
//	if err != nil {
//	    return err
//	}
//
//	cb.Subscribe(func(change circuitbreaker.StateChange) {
//	    if change.To == circuitbreaker.StateClosed {
//	        // downstream recovered, resume deferred work
//	    }
//	})
//
//	_, err = cb.Execute(func() (any, error) {
//	    return nil, sendEmail()
//	})
//
// # Error Handling
//
// Execute returns ErrOpen when the breaker rejects a call outright and
// ErrTooManyRequests when the half-open probe budget is exhausted; both wrap
// the underlying gobreaker error and can be checked with errors.Is.
package circuitbreaker

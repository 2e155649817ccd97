package poller

import (
	"context"
	"errors"
	"time"

	"github.com/objectledger/custodian/internal/adapter"
)

// ErrNoObservation indicates every probe attempt failed before a value
// was observed
var ErrNoObservation = errors.New("no observation within attempt budget")

// Probe reads one observation of the polled state
type Probe[T any] func(ctx context.Context) (T, error)

// Config bounds a polling run
type Config struct {
	// Attempts is the maximum number of probes per run
	Attempts int
	// Delay is the fixed pause between consecutive probes
	Delay time.Duration
}

// DefaultConfig matches the confirmation budget used across the service
var DefaultConfig = Config{
	Attempts: 3,
	Delay:    2 * time.Second,
}

// Result is the outcome of a polling run. Stale marks a value that never
// satisfied the predicate within the attempt budget; callers surface it
// as last-seen state rather than confirmed state.
type Result[T any] struct {
	Value    T
	Stale    bool
	Attempts int
}

// Poll probes until the predicate accepts an observation or the attempt
// budget runs out. Probe errors are tolerated as long as a later attempt
// succeeds; a run where no probe ever returned a value fails with the
// last probe error.
func Poll[T any](ctx context.Context, clock adapter.Clock, cfg Config, probe Probe[T], accept func(T) bool) (Result[T], error) {
	if cfg.Attempts <= 0 {
		cfg = DefaultConfig
	}

	var (
		last     T
		observed bool
		lastErr  error
	)

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return Result[T]{}, ctx.Err()
			case <-clock.After(cfg.Delay):
			}
		}

		value, err := probe(ctx)
		if err != nil {
			lastErr = err
			continue
		}

		last = value
		observed = true
		if accept(value) {
			return Result[T]{Value: value, Attempts: attempt}, nil
		}
	}

	if !observed {
		if lastErr == nil {
			lastErr = ErrNoObservation
		}
		return Result[T]{}, lastErr
	}

	return Result[T]{Value: last, Stale: true, Attempts: cfg.Attempts}, nil
}

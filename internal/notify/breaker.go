package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tair/dairy-ledger/pkg/logger"
)

// ErrCircuitOpen is returned while the breaker rejects calls
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState represents the state of a circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// halfOpenSuccesses is how many probes must pass before the circuit closes
const halfOpenSuccesses = 3

// Breaker stops calling a failing gateway until it has had time to recover
type Breaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration
	now         func() time.Time

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewBreaker opens after maxFailures consecutive failures and probes again
// once cooldown has elapsed.
func NewBreaker(name string, maxFailures int, cooldown time.Duration) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{
		name:            name,
		maxFailures:     maxFailures,
		cooldown:        cooldown,
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Call runs fn unless the circuit is open
func (b *Breaker) Call(ctx context.Context, fn func(context.Context) error) error {
	b.mu.Lock()
	if b.state == StateOpen && b.now().Sub(b.lastStateChange) >= b.cooldown {
		b.transition(ctx, StateHalfOpen)
		b.successes = 0
	}
	state := b.state
	b.mu.Unlock()

	if state == StateOpen {
		return fmt.Errorf("%w for %s", ErrCircuitOpen, b.name)
	}

	err := fn(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure(ctx)
	} else {
		b.onSuccess(ctx)
	}
	return err
}

// State returns the current state
func (b *Breaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) onFailure(ctx context.Context) {
	b.failures++
	switch {
	case b.state == StateHalfOpen:
		b.transition(ctx, StateOpen)
	case b.failures >= b.maxFailures:
		logger.Error(ctx).
			Str("circuit", b.name).
			Int("failures", b.failures).
			Int("threshold", b.maxFailures).
			Msg("Circuit breaker opened")
		b.transition(ctx, StateOpen)
	}
}

func (b *Breaker) onSuccess(ctx context.Context) {
	if b.state != StateHalfOpen {
		b.failures = 0
		return
	}
	b.successes++
	if b.successes >= halfOpenSuccesses {
		b.failures = 0
		b.successes = 0
		b.transition(ctx, StateClosed)
	}
}

// transition must be called with mu held
func (b *Breaker) transition(ctx context.Context, to CircuitState) {
	from := b.state
	b.state = to
	b.lastStateChange = b.now()
	logger.Info(ctx).
		Str("circuit", b.name).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("Circuit breaker state changed")
}

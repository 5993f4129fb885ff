package store

import (
	"context"
	"errors"

	"github.com/tair/dairy-ledger/pkg/metrics"
)

// Runner executes units of work atomically, retrying on version conflicts
type Runner struct {
	gw       Gateway
	attempts int
}

func NewRunner(gw Gateway, attempts int) *Runner {
	return &Runner{gw: gw, attempts: attempts}
}

// Gateway returns the non-transactional gateway for reads
func (r *Runner) Gateway() Gateway {
	return r.gw
}

// Run executes fn in one transaction. op labels conflict metrics.
func (r *Runner) Run(ctx context.Context, op string, fn func(tx Gateway) error) error {
	return Atomically(ctx, r.gw, r.attempts, func(tx Gateway) error {
		err := fn(tx)
		if errors.Is(err, ErrConflict) {
			metrics.ConflictRetries.WithLabelValues(op).Inc()
		}
		return err
	})
}

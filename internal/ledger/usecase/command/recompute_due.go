package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/ledger"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/store"
)

// RecomputeDueHandler rebuilds a customer's cached balance from records
type RecomputeDueHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewRecomputeDueHandler creates a new recompute due handler
func NewRecomputeDueHandler(runner *store.Runner, c *cache.Cache) *RecomputeDueHandler {
	return &RecomputeDueHandler{runner: runner, cache: c}
}

// Handle executes the recompute due command
func (h *RecomputeDueHandler) Handle(ctx context.Context, customerID uint) (decimal.Decimal, error) {
	var due decimal.Decimal
	err := h.runner.Run(ctx, "recompute_due", func(tx store.Gateway) error {
		var err error
		due, err = ledger.NewEngine(tx).RecomputeDue(ctx, customerID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	h.cache.Invalidate(ctx, cache.NSDashboard)
	return due, nil
}

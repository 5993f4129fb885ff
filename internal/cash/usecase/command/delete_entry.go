package command

import (
	"context"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/store"
)

// DeleteEntryHandler handles removal of manual cash entries
type DeleteEntryHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewDeleteEntryHandler creates a new delete entry handler
func NewDeleteEntryHandler(runner *store.Runner, c *cache.Cache) *DeleteEntryHandler {
	return &DeleteEntryHandler{runner: runner, cache: c}
}

// Handle executes the delete entry command
func (h *DeleteEntryHandler) Handle(ctx context.Context, id uint) error {
	err := h.runner.Run(ctx, "delete_cash_entry", func(tx store.Gateway) error {
		return cash.NewJournal(tx).DeleteManual(ctx, id)
	})
	if err != nil {
		return err
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	return nil
}

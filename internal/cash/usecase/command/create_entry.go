package command

import (
	"context"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/store"
)

// CreateEntryHandler handles manual cash entries
type CreateEntryHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewCreateEntryHandler creates a new create entry handler
func NewCreateEntryHandler(runner *store.Runner, c *cache.Cache) *CreateEntryHandler {
	return &CreateEntryHandler{runner: runner, cache: c}
}

// Handle executes the create entry command
func (h *CreateEntryHandler) Handle(ctx context.Context, cmd cash.ManualEntry) (*domain.CashEntry, error) {
	var entry *domain.CashEntry
	err := h.runner.Run(ctx, "create_cash_entry", func(tx store.Gateway) error {
		var err error
		entry, err = cash.NewJournal(tx).AddManual(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	return entry, nil
}

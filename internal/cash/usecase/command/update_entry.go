package command

import (
	"context"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/store"
)

// UpdateEntryCommand represents an edit of a manual cash entry
type UpdateEntryCommand struct {
	ID    uint
	Entry cash.ManualEntry
}

// UpdateEntryHandler handles edits of manual cash entries
type UpdateEntryHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewUpdateEntryHandler creates a new update entry handler
func NewUpdateEntryHandler(runner *store.Runner, c *cache.Cache) *UpdateEntryHandler {
	return &UpdateEntryHandler{runner: runner, cache: c}
}

// Handle executes the update entry command
func (h *UpdateEntryHandler) Handle(ctx context.Context, cmd UpdateEntryCommand) (*domain.CashEntry, error) {
	var entry *domain.CashEntry
	err := h.runner.Run(ctx, "update_cash_entry", func(tx store.Gateway) error {
		var err error
		entry, err = cash.NewJournal(tx).UpdateManual(ctx, cmd.ID, cmd.Entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	return entry, nil
}

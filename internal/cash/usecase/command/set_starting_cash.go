package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// SetStartingCashCommand represents the opening cash of a business day
type SetStartingCashCommand struct {
	BusinessDate period.Date
	Amount       decimal.Decimal
	Note         string
}

// SetStartingCashHandler handles starting cash updates
type SetStartingCashHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewSetStartingCashHandler creates a new starting cash handler
func NewSetStartingCashHandler(runner *store.Runner, c *cache.Cache) *SetStartingCashHandler {
	return &SetStartingCashHandler{runner: runner, cache: c}
}

// Handle executes the set starting cash command
func (h *SetStartingCashHandler) Handle(ctx context.Context, cmd SetStartingCashCommand) (*domain.StartingCash, error) {
	var record *domain.StartingCash
	err := h.runner.Run(ctx, "set_starting_cash", func(tx store.Gateway) error {
		var err error
		record, err = cash.NewJournal(tx).SetStartingCash(ctx, cmd.BusinessDate, cmd.Amount, cmd.Note)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	return record, nil
}

package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// AddStockCommand represents a restock of one product
type AddStockCommand struct {
	ProductID    uint
	BusinessDate period.Date
	Quantity     decimal.Decimal
	Note         string
}

// AddStockHandler handles stock additions
type AddStockHandler struct {
	runner *store.Runner
	policy inventory.Policy
	cache  *cache.Cache
}

// NewAddStockHandler creates a new add stock handler
func NewAddStockHandler(runner *store.Runner, policy inventory.Policy, c *cache.Cache) *AddStockHandler {
	return &AddStockHandler{runner: runner, policy: policy, cache: c}
}

// Handle executes the add stock command
func (h *AddStockHandler) Handle(ctx context.Context, cmd AddStockCommand) (*inventory.StockResult, error) {
	var result *inventory.StockResult
	err := h.runner.Run(ctx, "add_stock", func(tx store.Gateway) error {
		var err error
		result, err = inventory.NewEngine(tx, h.policy).RecordStockAddition(ctx, cmd.ProductID, cmd.BusinessDate, cmd.Quantity, cmd.Note)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.NSInventory, cache.NSDashboard)
	return result, nil
}

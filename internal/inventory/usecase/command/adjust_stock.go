package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// AdjustStockCommand sets a product's counted quantity
type AdjustStockCommand struct {
	ProductID    uint
	BusinessDate period.Date
	Quantity     decimal.Decimal
	Note         string
}

// AdjustStockHandler handles stock count corrections
type AdjustStockHandler struct {
	runner *store.Runner
	policy inventory.Policy
	cache  *cache.Cache
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(runner *store.Runner, policy inventory.Policy, c *cache.Cache) *AdjustStockHandler {
	return &AdjustStockHandler{runner: runner, policy: policy, cache: c}
}

// Handle executes the adjust stock command
func (h *AdjustStockHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*inventory.StockResult, error) {
	var result *inventory.StockResult
	err := h.runner.Run(ctx, "adjust_stock", func(tx store.Gateway) error {
		var err error
		result, err = inventory.NewEngine(tx, h.policy).AdjustStock(ctx, cmd.ProductID, cmd.BusinessDate, cmd.Quantity, cmd.Note)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Movement != nil {
		h.cache.Invalidate(ctx, cache.NSInventory, cache.NSDashboard)
	}
	return result, nil
}

package command

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// RecordWasteCommand books spoiled stock
type RecordWasteCommand struct {
	ProductID    uint
	BusinessDate period.Date
	Quantity     decimal.Decimal
	Note         string
}

type RecordWasteHandler struct {
	runner *store.Runner
	policy inventory.Policy
	cache  *cache.Cache
}

func NewRecordWasteHandler(runner *store.Runner, policy inventory.Policy, c *cache.Cache) *RecordWasteHandler {
	return &RecordWasteHandler{runner: runner, policy: policy, cache: c}
}

func (h *RecordWasteHandler) Handle(ctx context.Context, cmd RecordWasteCommand) (*inventory.StockResult, error) {
	var result *inventory.StockResult
	err := h.runner.Run(ctx, "record_waste", func(tx store.Gateway) error {
		var err error
		result, err = inventory.NewEngine(tx, h.policy).RecordWaste(ctx, cmd.ProductID, cmd.BusinessDate, cmd.Quantity, cmd.Note)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.NSInventory, cache.NSDashboard)
	return result, nil
}

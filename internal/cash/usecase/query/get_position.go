package query

import (
	"context"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// GetPositionHandler handles cash position queries
type GetPositionHandler struct {
	gw    store.Gateway
	cache *cache.Cache
}

// NewGetPositionHandler creates a new cash position handler
func NewGetPositionHandler(runner *store.Runner, c *cache.Cache) *GetPositionHandler {
	return &GetPositionHandler{gw: runner.Gateway(), cache: c}
}

// Handle executes the cash position query
func (h *GetPositionHandler) Handle(ctx context.Context, rng period.Range) (*domain.CashPosition, error) {
	key := cache.Key(cache.NSCash, "position", rng.Start.String(), rng.End.String())
	return cache.Fetch(ctx, h.cache, key, func(ctx context.Context) (*domain.CashPosition, error) {
		return cash.NewCalculator(h.gw).ComputeCashPosition(ctx, rng)
	})
}

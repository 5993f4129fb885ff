package query

import (
	"context"
	"strconv"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// GetDailySummaryQuery represents the query to summarise one product's day
type GetDailySummaryQuery struct {
	ProductID    uint
	BusinessDate period.Date
}

// GetDailySummaryHandler handles daily summary queries
type GetDailySummaryHandler struct {
	gw     store.Gateway
	policy inventory.Policy
	cache  *cache.Cache
}

// NewGetDailySummaryHandler creates a new daily summary handler
func NewGetDailySummaryHandler(runner *store.Runner, policy inventory.Policy, c *cache.Cache) *GetDailySummaryHandler {
	return &GetDailySummaryHandler{gw: runner.Gateway(), policy: policy, cache: c}
}

// Handle executes the daily summary query
func (h *GetDailySummaryHandler) Handle(ctx context.Context, q GetDailySummaryQuery) (domain.DailySummary, error) {
	key := cache.Key(cache.NSInventory, "summary", strconv.FormatUint(uint64(q.ProductID), 10), q.BusinessDate.String())
	return cache.Fetch(ctx, h.cache, key, func(ctx context.Context) (domain.DailySummary, error) {
		return inventory.NewEngine(h.gw, h.policy).GetDailySummary(ctx, q.ProductID, q.BusinessDate)
	})
}

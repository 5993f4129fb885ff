package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/pkg/money"
)

// GetStatsQuery represents the query to get product statistics
type GetStatsQuery struct{}

// ProductStats represents product statistics
type ProductStats struct {
	TotalProducts  int64           `json:"total_products"`
	ActiveProducts int64           `json:"active_products"`
	LowStock       int64           `json:"low_stock"`
	OutOfStock     int64           `json:"out_of_stock"`
	StockValue     decimal.Decimal `json:"stock_value"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo      domain.ProductRepository
	threshold domain.LowStockThreshold
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository, threshold domain.LowStockThreshold) *GetStatsHandler {
	return &GetStatsHandler{repo: repo, threshold: threshold}
}

// Handle executes the get stats query. Stock figures cover active products.
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*ProductStats, error) {
	total, err := h.repo.Count(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get product count: %w", err)
	}

	products, err := h.repo.FindAll(ctx, domain.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	stats := &ProductStats{TotalProducts: total, StockValue: decimal.Zero}
	for _, p := range products {
		stats.ActiveProducts++
		switch p.StockStatus(int(h.threshold)) {
		case domain.StockLow:
			stats.LowStock++
		case domain.StockOut:
			stats.OutOfStock++
		}
		stats.StockValue = stats.StockValue.Add(money.LineTotal(p.Quantity, p.PricePerUnit))
	}
	return stats, nil
}

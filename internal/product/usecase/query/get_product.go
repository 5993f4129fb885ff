package query

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/product/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo      domain.ProductRepository
	threshold domain.LowStockThreshold
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository, threshold domain.LowStockThreshold) *GetProductHandler {
	return &GetProductHandler{repo: repo, threshold: threshold}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.ProductView, error) {
	product, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", q.ID, err)
	}
	view := product.View(h.threshold)
	return &view, nil
}

package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/dairy-ledger/internal/product/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit      int
	Offset     int
	ActiveOnly bool
	// Search matches product names case-insensitively
	Search string
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo      domain.ProductRepository
	threshold domain.LowStockThreshold
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, threshold domain.LowStockThreshold) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, threshold: threshold}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.ProductView, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	filter := domain.ListFilter{ActiveOnly: q.ActiveOnly, Limit: q.Limit, Offset: q.Offset}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search != "" {
		// The catalogue is small; match names in memory, then page.
		filter.Limit, filter.Offset = 0, 0
	}

	products, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		views = append(views, p.View(h.threshold))
	}

	if search != "" {
		views = page(views, q.Limit, q.Offset)
	}
	return views, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

package query

import (
	"context"

	"github.com/tair/dairy-ledger/internal/inventory/domain"
)

// ListMovementsQuery represents the stock movement history query
type ListMovementsQuery struct {
	Filter domain.MovementFilter
}

// ListMovementsHandler handles movement history queries
type ListMovementsHandler struct {
	repo domain.InventoryRepository
}

// NewListMovementsHandler creates a new movement history handler
func NewListMovementsHandler(repo domain.InventoryRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the movement history query
func (h *ListMovementsHandler) Handle(ctx context.Context, q ListMovementsQuery) ([]domain.StockMovement, error) {
	if q.Filter.Limit <= 0 || q.Filter.Limit > 500 {
		q.Filter.Limit = 100
	}
	return h.repo.ListMovements(ctx, q.Filter)
}

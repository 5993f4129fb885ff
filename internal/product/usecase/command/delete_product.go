package command

import (
	"context"
	"fmt"

	inventoryrepo "github.com/tair/dairy-ledger/internal/inventory/repository"
	"github.com/tair/dairy-ledger/internal/product/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/store"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteResult tells whether the product was kept for its history
type DeleteResult struct {
	ID          uint `json:"id"`
	Deactivated bool `json:"deactivated"`
}

// DeleteProductHandler handles product deletion command. A product with
// stock movements is deactivated instead of removed.
type DeleteProductHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(runner *store.Runner, c *cache.Cache) *DeleteProductHandler {
	return &DeleteProductHandler{runner: runner, cache: c}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (*DeleteResult, error) {
	if cmd.ID == 0 {
		return nil, apperr.Invalid("invalid product id")
	}

	result := &DeleteResult{ID: cmd.ID}
	err := h.runner.Run(ctx, "delete_product", func(tx store.Gateway) error {
		products := repository.NewProductRepository(tx)
		if _, err := products.FindByID(ctx, cmd.ID); err != nil {
			return fmt.Errorf("product %d: %w", cmd.ID, err)
		}

		history, err := inventoryrepo.NewInventoryRepository(tx).CountMovements(ctx, cmd.ID)
		if err != nil {
			return fmt.Errorf("count stock movements: %w", err)
		}
		if history > 0 {
			result.Deactivated = true
			return products.Deactivate(ctx, cmd.ID)
		}
		return products.Delete(ctx, cmd.ID)
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.NSDashboard)
	return result, nil
}

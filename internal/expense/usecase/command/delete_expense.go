package command

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/logger"
)

// DeleteExpenseHandler handles expense deletion
type DeleteExpenseHandler struct {
	repo  domain.ExpenseRepository
	cache *cache.Cache
}

// NewDeleteExpenseHandler creates a new delete expense handler
func NewDeleteExpenseHandler(repo domain.ExpenseRepository, c *cache.Cache) *DeleteExpenseHandler {
	return &DeleteExpenseHandler{repo: repo, cache: c}
}

// Handle executes the delete expense command
func (h *DeleteExpenseHandler) Handle(ctx context.Context, id uint) error {
	if err := h.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("expense %d: %w", id, err)
	}
	h.cache.Invalidate(ctx, cache.Financial...)
	logger.Info(ctx).Uint("expense_id", id).Msg("Expense deleted")
	return nil
}

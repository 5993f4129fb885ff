package command

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/pkg/cache"
)

// UpdateExpenseCommand replaces every editable field of an expense
type UpdateExpenseCommand struct {
	ID      uint
	Expense ExpenseInput
}

// UpdateExpenseHandler handles expense updates
type UpdateExpenseHandler struct {
	repo  domain.ExpenseRepository
	cache *cache.Cache
}

// NewUpdateExpenseHandler creates a new update expense handler
func NewUpdateExpenseHandler(repo domain.ExpenseRepository, c *cache.Cache) *UpdateExpenseHandler {
	return &UpdateExpenseHandler{repo: repo, cache: c}
}

// Handle executes the update expense command
func (h *UpdateExpenseHandler) Handle(ctx context.Context, cmd UpdateExpenseCommand) (*domain.Expense, error) {
	if err := cmd.Expense.validate(); err != nil {
		return nil, err
	}

	expense, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("expense %d: %w", cmd.ID, err)
	}
	cmd.Expense.apply(expense)
	if err := h.repo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	return expense, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/expense/domain"
)

// GetExpenseHandler handles get expense query
type GetExpenseHandler struct {
	repo domain.ExpenseRepository
}

// NewGetExpenseHandler creates a new get expense handler
func NewGetExpenseHandler(repo domain.ExpenseRepository) *GetExpenseHandler {
	return &GetExpenseHandler{repo: repo}
}

func (h *GetExpenseHandler) Handle(ctx context.Context, id uint) (*domain.Expense, error) {
	expense, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("expense %d: %w", id, err)
	}
	return expense, nil
}

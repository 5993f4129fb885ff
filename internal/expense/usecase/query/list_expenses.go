package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
)

// ExpenseList is one page of expenses with totals per category
type ExpenseList struct {
	Expenses   []domain.Expense                    `json:"expenses"`
	Total      decimal.Decimal                     `json:"total"`
	ByCategory map[domain.Category]decimal.Decimal `json:"by_category"`
}

// ListExpensesHandler handles list expenses query
type ListExpensesHandler struct {
	repo domain.ExpenseRepository
}

// NewListExpensesHandler creates a new list expenses handler
func NewListExpensesHandler(repo domain.ExpenseRepository) *ListExpensesHandler {
	return &ListExpensesHandler{repo: repo}
}

// Handle executes the list expenses query
func (h *ListExpensesHandler) Handle(ctx context.Context, filter domain.ListFilter) (*ExpenseList, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, apperr.Invalid("invalid category %q", filter.Category)
	}
	if filter.PaymentMode != "" && !filter.PaymentMode.Valid() {
		return nil, apperr.Invalid("invalid payment mode %q", filter.PaymentMode)
	}

	expenses, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	list := &ExpenseList{
		Expenses:   expenses,
		Total:      decimal.Zero,
		ByCategory: make(map[domain.Category]decimal.Decimal),
	}
	if list.Expenses == nil {
		list.Expenses = []domain.Expense{}
	}
	for _, e := range expenses {
		list.Total = list.Total.Add(e.Amount)
		list.ByCategory[e.Category] = list.ByCategory[e.Category].Add(e.Amount)
	}
	return list, nil
}

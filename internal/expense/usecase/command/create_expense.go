package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
)

// ExpenseInput carries the editable fields of an expense
type ExpenseInput struct {
	Title        string
	Category     domain.Category
	Amount       decimal.Decimal
	PaymentMode  domain.PaymentMode
	BusinessDate period.Date
	Note         string
}

func (in ExpenseInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.Invalid("title is required")
	}
	if !in.Category.Valid() {
		return apperr.Invalid("invalid category %q", in.Category)
	}
	if !in.PaymentMode.Valid() {
		return apperr.Invalid("invalid payment mode %q", in.PaymentMode)
	}
	if !money.Round(in.Amount).IsPositive() {
		return apperr.Invalid("amount must be greater than zero")
	}
	if _, err := period.ParseDate(string(in.BusinessDate)); err != nil {
		return apperr.Invalid("%v", err)
	}
	return nil
}

func (in ExpenseInput) apply(e *domain.Expense) {
	e.Title = strings.TrimSpace(in.Title)
	e.Category = in.Category
	e.Amount = money.Round(in.Amount)
	e.PaymentMode = in.PaymentMode
	e.BusinessDate = in.BusinessDate
	e.Note = strings.TrimSpace(in.Note)
}

// CreateExpenseHandler handles expense creation
type CreateExpenseHandler struct {
	repo  domain.ExpenseRepository
	cache *cache.Cache
}

// NewCreateExpenseHandler creates a new create expense handler
func NewCreateExpenseHandler(repo domain.ExpenseRepository, c *cache.Cache) *CreateExpenseHandler {
	return &CreateExpenseHandler{repo: repo, cache: c}
}

// Handle executes the create expense command
func (h *CreateExpenseHandler) Handle(ctx context.Context, in ExpenseInput) (*domain.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	expense := &domain.Expense{}
	in.apply(expense)
	if err := h.repo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	logger.Info(ctx).
		Uint("expense_id", expense.ID).
		Str("category", string(expense.Category)).
		Str("amount", expense.Amount.String()).
		Msg("Expense recorded")
	return expense, nil
}

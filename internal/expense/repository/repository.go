package repository

import (
	"context"

	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/pkg/store"
)

type ExpenseRepository struct {
	gw store.Gateway
}

func NewExpenseRepository(gw store.Gateway) *ExpenseRepository {
	return &ExpenseRepository{gw: gw}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	return r.gw.Create(ctx, expense)
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id uint) (*domain.Expense, error) {
	var expense domain.Expense
	if err := r.gw.Get(ctx, id, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Expense, error) {
	q := store.Q()
	if filter.Range != nil {
		q = q.Where("business_date", store.Gte, filter.Range.Start).
			Where("business_date", store.Lt, filter.Range.End)
	}
	if filter.Category != "" {
		q = q.Where("category", store.Eq, filter.Category)
	}
	if filter.PaymentMode != "" {
		q = q.Where("payment_mode", store.Eq, filter.PaymentMode)
	}
	q = q.OrderBy("business_date", true).OrderBy("id", true).Page(filter.Limit, filter.Offset)

	var expenses []domain.Expense
	err := r.gw.Query(ctx, &expenses, q)
	return expenses, err
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	return r.gw.Update(ctx, &domain.Expense{}, expense.ID, map[string]interface{}{
		"title":         expense.Title,
		"category":      expense.Category,
		"amount":        expense.Amount,
		"payment_mode":  expense.PaymentMode,
		"business_date": expense.BusinessDate,
		"note":          expense.Note,
	})
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uint) error {
	return r.gw.Delete(ctx, &domain.Expense{}, id)
}

package repository

import (
	"context"

	"github.com/tair/dairy-ledger/internal/customer/domain"
	"github.com/tair/dairy-ledger/pkg/store"
)

type CustomerRepository struct {
	gw store.Gateway
}

func NewCustomerRepository(gw store.Gateway) *CustomerRepository {
	return &CustomerRepository{gw: gw}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.gw.Create(ctx, customer)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.gw.Get(ctx, id, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context, filter domain.ListFilter) ([]domain.Customer, error) {
	q := store.Q().OrderBy("name", false).Page(filter.Limit, filter.Offset)
	if filter.ActiveOnly {
		q = q.Where("is_active", store.Eq, true)
	}

	var customers []domain.Customer
	err := r.gw.Query(ctx, &customers, q)
	return customers, err
}

func (r *CustomerRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	q := store.Q()
	if activeOnly {
		q = q.Where("is_active", store.Eq, true)
	}
	return r.gw.Count(ctx, &domain.Customer{}, q)
}

func (r *CustomerRepository) UpdateContact(ctx context.Context, customer *domain.Customer) error {
	return r.gw.Update(ctx, &domain.Customer{}, customer.ID, map[string]interface{}{
		"name":    customer.Name,
		"phone":   customer.Phone,
		"address": customer.Address,
	})
}

func (r *CustomerRepository) SaveBalance(ctx context.Context, customer *domain.Customer) error {
	err := r.gw.CompareAndUpdate(ctx, &domain.Customer{}, customer.ID, customer.Version, map[string]interface{}{
		"total_due":         customer.TotalDue,
		"last_sale_date":    customer.LastSaleDate,
		"last_payment_date": customer.LastPaymentDate,
	})
	if err != nil {
		return err
	}
	customer.Version++
	return nil
}

func (r *CustomerRepository) Deactivate(ctx context.Context, id uint) error {
	return r.gw.Update(ctx, &domain.Customer{}, id, map[string]interface{}{"is_active": false})
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.gw.Delete(ctx, &domain.Customer{}, id)
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/pkg/store"
)

type ProductRepository struct {
	gw store.Gateway
}

func NewProductRepository(gw store.Gateway) *ProductRepository {
	return &ProductRepository{gw: gw}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.gw.Create(ctx, product)
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.gw.Get(ctx, id, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	q := store.Q().OrderBy("name", false).Page(filter.Limit, filter.Offset)
	if filter.ActiveOnly {
		q = q.Where("is_active", store.Eq, true)
	}

	var products []domain.Product
	err := r.gw.Query(ctx, &products, q)
	return products, err
}

func (r *ProductRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	q := store.Q()
	if activeOnly {
		q = q.Where("is_active", store.Eq, true)
	}
	return r.gw.Count(ctx, &domain.Product{}, q)
}

func (r *ProductRepository) UpdateDetails(ctx context.Context, product *domain.Product) error {
	return r.gw.Update(ctx, &domain.Product{}, product.ID, map[string]interface{}{
		"name":           product.Name,
		"unit":           product.Unit,
		"price_per_unit": product.PricePerUnit,
		"is_active":      product.IsActive,
	})
}

func (r *ProductRepository) SetQuantity(ctx context.Context, product *domain.Product, quantity decimal.Decimal) error {
	err := r.gw.CompareAndUpdate(ctx, &domain.Product{}, product.ID, product.Version, map[string]interface{}{
		"quantity": quantity,
	})
	if err != nil {
		return err
	}
	product.Quantity = quantity
	product.Version++
	return nil
}

func (r *ProductRepository) Deactivate(ctx context.Context, id uint) error {
	return r.gw.Update(ctx, &domain.Product{}, id, map[string]interface{}{"is_active": false})
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.gw.Delete(ctx, &domain.Product{}, id)
}

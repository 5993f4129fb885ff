package repository

import (
	"context"

	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/pkg/store"
)

type SaleRepository struct {
	gw store.Gateway
}

func NewSaleRepository(gw store.Gateway) *SaleRepository {
	return &SaleRepository{gw: gw}
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	return r.gw.Create(ctx, sale)
}

func (r *SaleRepository) CreateItem(ctx context.Context, item *domain.LineItem) error {
	return r.gw.Create(ctx, item)
}

func (r *SaleRepository) FindByID(ctx context.Context, id uint) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.gw.Get(ctx, id, &sale); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Sale, error) {
	var sale domain.Sale
	if err := r.gw.First(ctx, &sale, store.Q().Where("idempotency_key", store.Eq, key)); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) FindOpenByCustomer(ctx context.Context, customerID uint) ([]domain.Sale, error) {
	var sales []domain.Sale
	err := r.gw.Query(ctx, &sales, store.Q().
		Where("customer_id", store.Eq, customerID).
		Where("payment_status", store.Eq, domain.StatusPartial).
		OrderBy("sold_at", false).
		OrderBy("id", false))
	return sales, err
}

func (r *SaleRepository) SaveSettlement(ctx context.Context, sale *domain.Sale) error {
	err := r.gw.CompareAndUpdate(ctx, &domain.Sale{}, sale.ID, sale.Version, map[string]interface{}{
		"paid_amount":      sale.PaidAmount,
		"remaining_amount": sale.RemainingAmount,
		"payment_status":   sale.PaymentStatus,
	})
	if err != nil {
		return err
	}
	sale.Version++
	return nil
}

func (r *SaleRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Sale, error) {
	q := store.Q()
	if filter.Range != nil {
		q = q.Where("business_date", store.Gte, filter.Range.Start).
			Where("business_date", store.Lt, filter.Range.End)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id", store.Eq, *filter.CustomerID)
	}
	if filter.Mode != "" {
		q = q.Where("payment_mode", store.Eq, filter.Mode)
	}
	switch filter.Status {
	case "":
	case domain.StatusPending:
		q = q.Where("payment_status", store.Eq, domain.StatusPartial)
	default:
		q = q.Where("payment_status", store.Eq, filter.Status)
	}
	q = q.OrderBy("sold_at", true).OrderBy("id", true).Page(filter.Limit, filter.Offset)

	var sales []domain.Sale
	err := r.gw.Query(ctx, &sales, q)
	return sales, err
}

func (r *SaleRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	return r.gw.Count(ctx, &domain.Sale{}, store.Q().Where("customer_id", store.Eq, customerID))
}

func (r *SaleRepository) loadItems(ctx context.Context, sale *domain.Sale) error {
	return r.gw.Query(ctx, &sale.Items, store.Q().
		Where("sale_id", store.Eq, sale.ID).
		OrderBy("id", false))
}

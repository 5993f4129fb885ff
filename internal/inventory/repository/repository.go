package repository

import (
	"context"

	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

type InventoryRepository struct {
	gw store.Gateway
}

func NewInventoryRepository(gw store.Gateway) *InventoryRepository {
	return &InventoryRepository{gw: gw}
}

func (r *InventoryRepository) FindRecord(ctx context.Context, productID uint, date period.Date) (*domain.DailyRecord, error) {
	var record domain.DailyRecord
	err := r.gw.First(ctx, &record, store.Q().
		Where("product_id", store.Eq, productID).
		Where("business_date", store.Eq, date))
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *InventoryRepository) FindLatestBefore(ctx context.Context, productID uint, date period.Date) (*domain.DailyRecord, error) {
	var record domain.DailyRecord
	err := r.gw.First(ctx, &record, store.Q().
		Where("product_id", store.Eq, productID).
		Where("business_date", store.Lt, date).
		OrderBy("business_date", true))
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *InventoryRepository) CreateRecord(ctx context.Context, record *domain.DailyRecord) error {
	return r.gw.Create(ctx, record)
}

func (r *InventoryRepository) UpdateRecord(ctx context.Context, record *domain.DailyRecord) error {
	err := r.gw.CompareAndUpdate(ctx, &domain.DailyRecord{}, record.ID, record.Version, map[string]interface{}{
		"new_added":       record.NewAdded,
		"total_available": record.TotalAvailable,
		"sold":            record.Sold,
		"waste":           record.Waste,
		"remaining_qty":   record.RemainingQty,
	})
	if err != nil {
		return err
	}
	record.Version++
	return nil
}

func (r *InventoryRepository) ListRecords(ctx context.Context, date period.Date) ([]domain.DailyRecord, error) {
	var records []domain.DailyRecord
	err := r.gw.Query(ctx, &records, store.Q().
		Where("business_date", store.Eq, date).
		OrderBy("product_id", false))
	return records, err
}

func (r *InventoryRepository) AppendMovement(ctx context.Context, movement *domain.StockMovement) error {
	return r.gw.Create(ctx, movement)
}

func (r *InventoryRepository) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, error) {
	q := store.Q()
	if filter.ProductID != nil {
		q = q.Where("product_id", store.Eq, *filter.ProductID)
	}
	if filter.Range != nil {
		q = q.Where("business_date", store.Gte, filter.Range.Start).
			Where("business_date", store.Lt, filter.Range.End)
	}
	q = q.OrderBy("created_at", true).OrderBy("id", true).Page(filter.Limit, filter.Offset)

	var movements []domain.StockMovement
	err := r.gw.Query(ctx, &movements, q)
	return movements, err
}

func (r *InventoryRepository) CountMovements(ctx context.Context, productID uint) (int64, error) {
	return r.gw.Count(ctx, &domain.StockMovement{}, store.Q().Where("product_id", store.Eq, productID))
}

package repository

import (
	"context"

	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

type CashRepository struct {
	gw store.Gateway
}

func NewCashRepository(gw store.Gateway) *CashRepository {
	return &CashRepository{gw: gw}
}

func (r *CashRepository) CreateEntry(ctx context.Context, entry *domain.CashEntry) error {
	return r.gw.Create(ctx, entry)
}

func (r *CashRepository) FindEntry(ctx context.Context, id uint) (*domain.CashEntry, error) {
	var entry domain.CashEntry
	if err := r.gw.Get(ctx, id, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *CashRepository) UpdateEntry(ctx context.Context, entry *domain.CashEntry) error {
	return r.gw.Update(ctx, &domain.CashEntry{}, entry.ID, map[string]interface{}{
		"type":          entry.Type,
		"amount":        entry.Amount,
		"category":      entry.Category,
		"description":   entry.Description,
		"business_date": entry.BusinessDate,
	})
}

func (r *CashRepository) DeleteEntry(ctx context.Context, id uint) error {
	return r.gw.Delete(ctx, &domain.CashEntry{}, id)
}

func (r *CashRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.CashEntry, error) {
	q := store.Q().
		Where("business_date", store.Gte, filter.Range.Start).
		Where("business_date", store.Lt, filter.Range.End)
	if filter.Source != "" {
		q = q.Where("source", store.Eq, filter.Source)
	}
	q = q.OrderBy("business_date", false).OrderBy("id", false)

	var entries []domain.CashEntry
	err := r.gw.Query(ctx, &entries, q)
	return entries, err
}

func (r *CashRepository) FindStartingCash(ctx context.Context, date period.Date) (*domain.StartingCash, error) {
	var record domain.StartingCash
	if err := r.gw.First(ctx, &record, store.Q().Where("business_date", store.Eq, date)); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *CashRepository) CreateStartingCash(ctx context.Context, record *domain.StartingCash) error {
	return r.gw.Create(ctx, record)
}

func (r *CashRepository) UpdateStartingCash(ctx context.Context, record *domain.StartingCash) error {
	return r.gw.Update(ctx, &domain.StartingCash{}, record.ID, map[string]interface{}{
		"amount": record.Amount,
		"note":   record.Note,
	})
}

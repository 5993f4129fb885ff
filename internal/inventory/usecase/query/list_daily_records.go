package query

import (
	"context"

	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/period"
)

// ListDailyRecordsQuery lists every product's record for one date
type ListDailyRecordsQuery struct {
	BusinessDate period.Date
}

type ListDailyRecordsHandler struct {
	repo domain.InventoryRepository
}

func NewListDailyRecordsHandler(repo domain.InventoryRepository) *ListDailyRecordsHandler {
	return &ListDailyRecordsHandler{repo: repo}
}

func (h *ListDailyRecordsHandler) Handle(ctx context.Context, q ListDailyRecordsQuery) ([]domain.DailyRecord, error) {
	if _, err := period.ParseDate(string(q.BusinessDate)); err != nil {
		return nil, apperr.Invalid("%v", err)
	}
	return h.repo.ListRecords(ctx, q.BusinessDate)
}

package query

import (
	"context"

	"github.com/tair/dairy-ledger/internal/cash/domain"
)

// ListEntriesHandler handles cash journal listings
type ListEntriesHandler struct {
	repo domain.CashRepository
}

// NewListEntriesHandler creates a new list entries handler
func NewListEntriesHandler(repo domain.CashRepository) *ListEntriesHandler {
	return &ListEntriesHandler{repo: repo}
}

// Handle executes the list entries query
func (h *ListEntriesHandler) Handle(ctx context.Context, filter domain.EntryFilter) ([]domain.CashEntry, error) {
	entries, err := h.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.CashEntry{}
	}
	return entries, nil
}

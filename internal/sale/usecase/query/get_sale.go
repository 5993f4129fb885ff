package query

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/sale/domain"
)

// GetSaleHandler handles get sale query
type GetSaleHandler struct {
	repo domain.SaleRepository
}

// NewGetSaleHandler creates a new get sale handler
func NewGetSaleHandler(repo domain.SaleRepository) *GetSaleHandler {
	return &GetSaleHandler{repo: repo}
}

// Handle returns the sale with its line items
func (h *GetSaleHandler) Handle(ctx context.Context, id uint) (*domain.Sale, error) {
	sale, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sale %d: %w", id, err)
	}
	return sale, nil
}

package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// SaleList is one page of sales with the page totals
type SaleList struct {
	Sales          []domain.Sale   `json:"sales"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
}

// ListSalesHandler handles list sales query
type ListSalesHandler struct {
	repo domain.SaleRepository
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(repo domain.SaleRepository) *ListSalesHandler {
	return &ListSalesHandler{repo: repo}
}

// Handle executes the list sales query
func (h *ListSalesHandler) Handle(ctx context.Context, filter domain.ListFilter) (*SaleList, error) {
	if filter.Mode != "" && !filter.Mode.Valid() {
		return nil, apperr.Invalid("invalid payment mode %q", filter.Mode)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Invalid("invalid payment status %q", filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	sales, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	list := &SaleList{
		Sales:          sales,
		TotalAmount:    decimal.Zero,
		TotalPaid:      decimal.Zero,
		TotalRemaining: decimal.Zero,
		Limit:          filter.Limit,
		Offset:         filter.Offset,
	}
	if list.Sales == nil {
		list.Sales = []domain.Sale{}
	}
	for _, s := range sales {
		list.TotalAmount = list.TotalAmount.Add(s.TotalAmount)
		list.TotalPaid = list.TotalPaid.Add(s.PaidAmount)
		list.TotalRemaining = list.TotalRemaining.Add(s.RemainingAmount)
	}
	return list, nil
}

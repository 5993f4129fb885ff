package query

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/customer/domain"
)

// GetCustomerHandler handles get customer query
type GetCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewGetCustomerHandler creates a new get customer handler
func NewGetCustomerHandler(repo domain.CustomerRepository) *GetCustomerHandler {
	return &GetCustomerHandler{repo: repo}
}

// Handle executes the get customer query
func (h *GetCustomerHandler) Handle(ctx context.Context, id uint) (*domain.CustomerView, error) {
	customer, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, err)
	}
	view := customer.View()
	return &view, nil
}

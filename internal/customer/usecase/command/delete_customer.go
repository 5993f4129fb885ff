package command

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/customer/repository"
	ledgerrepo "github.com/tair/dairy-ledger/internal/ledger/repository"
	salerepo "github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/store"
)

// DeleteResult tells whether the customer was kept for their history
type DeleteResult struct {
	ID          uint `json:"id"`
	Deactivated bool `json:"deactivated"`
}

// DeleteCustomerHandler removes a customer. Customers with sales or
// payments are deactivated so their ledger stays intact.
type DeleteCustomerHandler struct {
	runner *store.Runner
	cache  *cache.Cache
}

// NewDeleteCustomerHandler creates a new delete customer handler
func NewDeleteCustomerHandler(runner *store.Runner, c *cache.Cache) *DeleteCustomerHandler {
	return &DeleteCustomerHandler{runner: runner, cache: c}
}

// Handle executes the delete customer command
func (h *DeleteCustomerHandler) Handle(ctx context.Context, id uint) (*DeleteResult, error) {
	if id == 0 {
		return nil, apperr.Invalid("invalid customer id")
	}

	result := &DeleteResult{ID: id}
	err := h.runner.Run(ctx, "delete_customer", func(tx store.Gateway) error {
		customers := repository.NewCustomerRepository(tx)
		if _, err := customers.FindByID(ctx, id); err != nil {
			return fmt.Errorf("customer %d: %w", id, err)
		}

		sales, err := salerepo.NewSaleRepository(tx).CountByCustomer(ctx, id)
		if err != nil {
			return fmt.Errorf("count sales: %w", err)
		}
		payments, err := ledgerrepo.NewPaymentRepository(tx).CountByCustomer(ctx, id)
		if err != nil {
			return fmt.Errorf("count payments: %w", err)
		}
		if sales+payments > 0 {
			result.Deactivated = true
			return customers.Deactivate(ctx, id)
		}
		return customers.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.NSDashboard)
	return result, nil
}

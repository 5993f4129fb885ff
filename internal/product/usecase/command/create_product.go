package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/internal/product/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name         string
	Unit         domain.Unit
	PricePerUnit decimal.Decimal
	// InitialQuantity is booked as a restock on BusinessDate
	InitialQuantity decimal.Decimal
	BusinessDate    period.Date
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	runner *store.Runner
	policy inventory.Policy
	cache  *cache.Cache
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(runner *store.Runner, policy inventory.Policy, c *cache.Cache) *CreateProductHandler {
	return &CreateProductHandler{runner: runner, policy: policy, cache: c}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return nil, apperr.Invalid("product name is required")
	}
	if !cmd.Unit.Valid() {
		return nil, apperr.Invalid("invalid unit %q", cmd.Unit)
	}
	if cmd.PricePerUnit.IsNegative() {
		return nil, apperr.Invalid("price cannot be negative")
	}
	if cmd.InitialQuantity.IsNegative() {
		return nil, apperr.Invalid("quantity cannot be negative")
	}

	var product *domain.Product
	err := h.runner.Run(ctx, "create_product", func(tx store.Gateway) error {
		product = &domain.Product{
			Name:         cmd.Name,
			Unit:         cmd.Unit,
			PricePerUnit: cmd.PricePerUnit,
			Quantity:     decimal.Zero,
			IsActive:     true,
		}
		if err := repository.NewProductRepository(tx).Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if !cmd.InitialQuantity.IsPositive() {
			return nil
		}

		result, err := inventory.NewEngine(tx, h.policy).RecordStockAddition(ctx, product.ID, cmd.BusinessDate, cmd.InitialQuantity, "opening stock")
		if err != nil {
			return err
		}
		product = result.Product
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.cache.Invalidate(ctx, cache.NSDashboard, cache.NSInventory)
	return product, nil
}

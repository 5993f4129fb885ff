package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
)

// UpdateProductCommand changes a product's catalogue details. Stock is
// changed through inventory adjustments only.
type UpdateProductCommand struct {
	ID           uint
	Name         string
	Unit         domain.Unit
	PricePerUnit decimal.Decimal
	IsActive     *bool
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", cmd.ID, err)
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		product.Name = name
	}
	if cmd.Unit != "" {
		if !cmd.Unit.Valid() {
			return nil, apperr.Invalid("invalid unit %q", cmd.Unit)
		}
		product.Unit = cmd.Unit
	}
	if cmd.PricePerUnit.IsNegative() {
		return nil, apperr.Invalid("price cannot be negative")
	}
	if !cmd.PricePerUnit.IsZero() {
		product.PricePerUnit = cmd.PricePerUnit
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	if err := h.repo.UpdateDetails(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/customer/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/cache"
)

// CreateCustomerCommand represents the command to register a customer
type CreateCustomerCommand struct {
	Name    string
	Phone   string
	Address string
}

// CreateCustomerHandler handles customer creation. New customers start
// with no dues.
type CreateCustomerHandler struct {
	repo  domain.CustomerRepository
	cache *cache.Cache
}

// NewCreateCustomerHandler creates a new create customer handler
func NewCreateCustomerHandler(repo domain.CustomerRepository, c *cache.Cache) *CreateCustomerHandler {
	return &CreateCustomerHandler{repo: repo, cache: c}
}

// Handle executes the create customer command
func (h *CreateCustomerHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) (*domain.Customer, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, apperr.Invalid("customer name is required")
	}

	customer := &domain.Customer{
		Name:     name,
		Phone:    strings.TrimSpace(cmd.Phone),
		Address:  strings.TrimSpace(cmd.Address),
		TotalDue: decimal.Zero,
		IsActive: true,
	}
	if err := h.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	h.cache.Invalidate(ctx, cache.NSDashboard)
	return customer, nil
}

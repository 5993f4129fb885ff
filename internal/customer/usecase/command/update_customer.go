package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/dairy-ledger/internal/customer/domain"
)

// UpdateCustomerCommand changes contact details. Empty fields are kept.
// The balance is owned by the ledger and cannot be set here.
type UpdateCustomerCommand struct {
	ID      uint
	Name    string
	Phone   *string
	Address *string
}

// UpdateCustomerHandler handles customer update command
type UpdateCustomerHandler struct {
	repo domain.CustomerRepository
}

// NewUpdateCustomerHandler creates a new update customer handler
func NewUpdateCustomerHandler(repo domain.CustomerRepository) *UpdateCustomerHandler {
	return &UpdateCustomerHandler{repo: repo}
}

// Handle executes the update customer command
func (h *UpdateCustomerHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) (*domain.Customer, error) {
	customer, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", cmd.ID, err)
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		customer.Name = name
	}
	if cmd.Phone != nil {
		customer.Phone = strings.TrimSpace(*cmd.Phone)
	}
	if cmd.Address != nil {
		customer.Address = strings.TrimSpace(*cmd.Address)
	}

	if err := h.repo.UpdateContact(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

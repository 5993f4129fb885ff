package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
)

// UpdateUserCommand replaces a user's profile. The password has its own
// command.
type UpdateUserCommand struct {
	ID       uint
	Name     string
	Mobile   string
	Email    string
	Address  string
	UserType string
	UserPay  decimal.Decimal
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo  domain.UserRepository
	types domain.UserTypeRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository, types domain.UserTypeRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo, types: types}
}

// Handle executes the update user command
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if cmd.UserPay.IsNegative() {
		return nil, apperr.Invalid("user pay cannot be negative")
	}

	user, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", cmd.ID, err)
	}
	if cmd.UserType != user.UserType {
		if err := checkUserType(ctx, h.types, cmd.UserType); err != nil {
			return nil, err
		}
	}

	user.Name = strings.TrimSpace(cmd.Name)
	user.Mobile = strings.TrimSpace(cmd.Mobile)
	user.Email = strings.TrimSpace(cmd.Email)
	user.Address = strings.TrimSpace(cmd.Address)
	user.UserType = cmd.UserType
	user.UserPay = cmd.UserPay

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

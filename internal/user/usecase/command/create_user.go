package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/auth"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/store"
)

// CreateUserCommand represents the command to create a staff user
type CreateUserCommand struct {
	Name     string
	Mobile   string
	Email    string
	Username string
	Password string
	Address  string
	UserType string
	UserPay  decimal.Decimal
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	repo  domain.UserRepository
	types domain.UserTypeRepository
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(repo domain.UserRepository, types domain.UserTypeRepository) *CreateUserHandler {
	return &CreateUserHandler{repo: repo, types: types}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Username == "" {
		return nil, apperr.Invalid("username is required")
	}
	if cmd.Name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if len(cmd.Password) < domain.MinPasswordLength {
		return nil, apperr.Invalid("password must be at least %d characters", domain.MinPasswordLength)
	}
	if cmd.UserPay.IsNegative() {
		return nil, apperr.Invalid("user pay cannot be negative")
	}
	if err := checkUserType(ctx, h.types, cmd.UserType); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     cmd.Name,
		Mobile:   strings.TrimSpace(cmd.Mobile),
		Email:    strings.TrimSpace(cmd.Email),
		Username: cmd.Username,
		Password: hash,
		Address:  strings.TrimSpace(cmd.Address),
		UserType: cmd.UserType,
		UserPay:  cmd.UserPay,
		IsActive: true,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("username %q already exists: %w", user.Username, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info(ctx).Uint("user_id", user.ID).Str("username", user.Username).Str("user_type", user.UserType).Msg("User created")
	return user, nil
}

// checkUserType rejects names that do not match a user type
func checkUserType(ctx context.Context, types domain.UserTypeRepository, name string) error {
	if name == "" {
		return apperr.Invalid("user type is required")
	}
	if _, err := types.FindByName(ctx, name); err != nil {
		if store.IsNotFound(err) {
			return apperr.Invalid("unknown user type %q", name)
		}
		return fmt.Errorf("load user type: %w", err)
	}
	return nil
}

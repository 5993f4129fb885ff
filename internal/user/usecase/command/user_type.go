package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/store"
)

// UserTypeCommand creates or updates a user type
type UserTypeCommand struct {
	ID       uint
	Name     string
	Pages    []string
	IsActive bool
}

// normalizePages drops duplicates and rejects unknown pages
func normalizePages(pages []string) (domain.PageList, error) {
	known := make(map[string]bool, len(httpx.AllPages))
	for _, p := range httpx.AllPages {
		known[p] = true
	}

	seen := make(map[string]bool, len(pages))
	out := domain.PageList{}
	for _, p := range pages {
		if !known[p] {
			return nil, apperr.Invalid("unknown page %q", p)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// CreateUserTypeHandler handles user type creation
type CreateUserTypeHandler struct {
	repo domain.UserTypeRepository
}

// NewCreateUserTypeHandler creates a new create user type handler
func NewCreateUserTypeHandler(repo domain.UserTypeRepository) *CreateUserTypeHandler {
	return &CreateUserTypeHandler{repo: repo}
}

func (h *CreateUserTypeHandler) Handle(ctx context.Context, cmd UserTypeCommand) (*domain.UserType, error) {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if name == "" {
		return nil, apperr.Invalid("user type name is required")
	}
	pages, err := normalizePages(cmd.Pages)
	if err != nil {
		return nil, err
	}

	userType := &domain.UserType{Name: name, Pages: pages, IsActive: cmd.IsActive}
	if err := h.repo.Create(ctx, userType); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("user type %q already exists: %w", name, err)
		}
		return nil, fmt.Errorf("failed to create user type: %w", err)
	}
	if !cmd.IsActive {
		// The column defaults to true on insert.
		if err := h.repo.Update(ctx, userType); err != nil {
			return nil, fmt.Errorf("failed to create user type: %w", err)
		}
	}
	return userType, nil
}

// UpdateUserTypeHandler handles user type updates
type UpdateUserTypeHandler struct {
	repo domain.UserTypeRepository
}

// NewUpdateUserTypeHandler creates a new update user type handler
func NewUpdateUserTypeHandler(repo domain.UserTypeRepository) *UpdateUserTypeHandler {
	return &UpdateUserTypeHandler{repo: repo}
}

func (h *UpdateUserTypeHandler) Handle(ctx context.Context, cmd UserTypeCommand) (*domain.UserType, error) {
	pages, err := normalizePages(cmd.Pages)
	if err != nil {
		return nil, err
	}

	userType, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("user type %d: %w", cmd.ID, err)
	}
	userType.Pages = pages
	userType.IsActive = cmd.IsActive
	if err := h.repo.Update(ctx, userType); err != nil {
		return nil, fmt.Errorf("failed to update user type: %w", err)
	}
	return userType, nil
}

// DeleteUserTypeHandler handles user type deletion
type DeleteUserTypeHandler struct {
	repo  domain.UserTypeRepository
	users domain.UserRepository
}

// NewDeleteUserTypeHandler creates a new delete user type handler
func NewDeleteUserTypeHandler(repo domain.UserTypeRepository, users domain.UserRepository) *DeleteUserTypeHandler {
	return &DeleteUserTypeHandler{repo: repo, users: users}
}

// Handle deletes the type unless users still refer to it
func (h *DeleteUserTypeHandler) Handle(ctx context.Context, id uint) error {
	userType, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user type %d: %w", id, err)
	}
	n, err := h.users.CountByType(ctx, userType.Name)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %q has %d users", domain.ErrUserTypeInUse, userType.Name, n)
	}
	if err := h.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("user type %d: %w", id, err)
	}
	return nil
}

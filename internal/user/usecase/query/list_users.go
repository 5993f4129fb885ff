package query

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/user/domain"
)

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, filter domain.ListFilter) ([]domain.User, error) {
	users, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListUserTypesHandler handles list user types query
type ListUserTypesHandler struct {
	repo domain.UserTypeRepository
}

// NewListUserTypesHandler creates a new list user types handler
func NewListUserTypesHandler(repo domain.UserTypeRepository) *ListUserTypesHandler {
	return &ListUserTypesHandler{repo: repo}
}

func (h *ListUserTypesHandler) Handle(ctx context.Context) ([]domain.UserType, error) {
	types, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user types: %w", err)
	}
	if types == nil {
		types = []domain.UserType{}
	}
	return types, nil
}

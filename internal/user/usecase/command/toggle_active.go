package command

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/user/domain"
)

// ToggleActiveCommand represents the command to activate or deactivate a user
type ToggleActiveCommand struct {
	UserID   uint
	IsActive bool
}

// ToggleActiveHandler handles user activation toggle command
type ToggleActiveHandler struct {
	repo domain.UserRepository
}

// NewToggleActiveHandler creates a new toggle active handler
func NewToggleActiveHandler(repo domain.UserRepository) *ToggleActiveHandler {
	return &ToggleActiveHandler{repo: repo}
}

// Handle executes the toggle active command
func (h *ToggleActiveHandler) Handle(ctx context.Context, cmd ToggleActiveCommand) (*domain.User, error) {
	if err := h.repo.SetActive(ctx, cmd.UserID, cmd.IsActive); err != nil {
		return nil, fmt.Errorf("user %d: %w", cmd.UserID, err)
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", cmd.UserID, err)
	}
	return user, nil
}

package command

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/logger"
)

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	repo domain.UserRepository
}

// NewDeleteUserHandler creates a new delete user handler
func NewDeleteUserHandler(repo domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{repo: repo}
}

// Handle executes the delete user command
func (h *DeleteUserHandler) Handle(ctx context.Context, id uint) error {
	if err := h.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}
	logger.Info(ctx).Uint("user_id", id).Msg("User deleted")
	return nil
}

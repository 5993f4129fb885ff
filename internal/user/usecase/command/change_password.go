package command

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/auth"
	"github.com/tair/dairy-ledger/pkg/logger"
)

// ChangePasswordCommand represents a password change
type ChangePasswordCommand struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordHandler handles password change command
type ChangePasswordHandler struct {
	repo domain.UserRepository
}

// NewChangePasswordHandler creates a new change password handler
func NewChangePasswordHandler(repo domain.UserRepository) *ChangePasswordHandler {
	return &ChangePasswordHandler{repo: repo}
}

// Handle verifies the current password and stores the new one
func (h *ChangePasswordHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) error {
	if len(cmd.NewPassword) < domain.MinPasswordLength {
		return apperr.Invalid("password must be at least %d characters", domain.MinPasswordLength)
	}

	user, err := h.repo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return fmt.Errorf("user %d: %w", cmd.UserID, err)
	}
	if !auth.CheckPassword(user.Password, cmd.CurrentPassword) {
		return domain.ErrWrongPassword
	}

	hash, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return err
	}
	if err := h.repo.SetPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Info(ctx).Uint("user_id", user.ID).Msg("Password changed")
	return nil
}

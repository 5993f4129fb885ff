package command

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/auth"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/store"
)

// SessionTTL is how long a login token stays valid
const SessionTTL = 12 * time.Hour

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Username string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *domain.User    `json:"user"`
	Pages     domain.PageList `json:"pages"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo  domain.UserRepository
	types domain.UserTypeRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, types domain.UserTypeRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, types: types}
}

// Handle checks the credentials and issues a token carrying the pages of
// the user's type.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Username == "" || cmd.Password == "" {
		return nil, apperr.Invalid("username and password are required")
	}

	user, err := h.repo.FindByUsername(ctx, cmd.Username)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPassword(user.Password, cmd.Password) {
		logger.Warn(ctx).Str("username", cmd.Username).Msg("Login rejected")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	userType, err := h.types.FindByName(ctx, user.UserType)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.ErrAccountDisabled
		}
		return nil, fmt.Errorf("load user type: %w", err)
	}
	if !userType.IsActive {
		return nil, domain.ErrAccountDisabled
	}

	expiresAt := time.Now().Add(SessionTTL)
	token, err := auth.GenerateToken(user.ID, user.Username, user.UserType, userType.Pages, SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info(ctx).Uint("user_id", user.ID).Str("user_type", user.UserType).Msg("User logged in")
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Pages:     userType.Pages,
	}, nil
}

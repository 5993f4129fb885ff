package query

import (
	"context"
	"fmt"

	"github.com/tair/dairy-ledger/internal/user/domain"
)

// UserStats represents staff counts
type UserStats struct {
	TotalUsers  int64            `json:"total_users"`
	ActiveUsers int64            `json:"active_users"`
	ByType      map[string]int64 `json:"by_type"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo  domain.UserRepository
	types domain.UserTypeRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository, types domain.UserTypeRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo, types: types}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(ctx context.Context) (*UserStats, error) {
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	active, err := h.repo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}
	types, err := h.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list user types: %w", err)
	}

	stats := &UserStats{TotalUsers: total, ActiveUsers: active, ByType: make(map[string]int64, len(types))}
	for _, t := range types {
		n, err := h.repo.CountByType(ctx, t.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s users: %w", t.Name, err)
		}
		stats.ByType[t.Name] = n
	}
	return stats, nil
}

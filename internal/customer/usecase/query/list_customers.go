package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/dairy-ledger/internal/customer/domain"
)

// ListCustomersQuery represents the query to list customers
type ListCustomersQuery struct {
	Limit      int
	Offset     int
	ActiveOnly bool
	// Search matches name or phone
	Search string
	// WithDues keeps only customers who owe money
	WithDues bool
}

// ListCustomersHandler handles list customers query
type ListCustomersHandler struct {
	repo domain.CustomerRepository
}

// NewListCustomersHandler creates a new list customers handler
func NewListCustomersHandler(repo domain.CustomerRepository) *ListCustomersHandler {
	return &ListCustomersHandler{repo: repo}
}

// Handle executes the list customers query
func (h *ListCustomersHandler) Handle(ctx context.Context, q ListCustomersQuery) ([]domain.CustomerView, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := search != "" || q.WithDues

	filter := domain.ListFilter{ActiveOnly: q.ActiveOnly, Limit: q.Limit, Offset: q.Offset}
	if filtered {
		filter.Limit, filter.Offset = 0, 0
	}

	customers, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	views := make([]domain.CustomerView, 0, len(customers))
	for _, c := range customers {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && !strings.Contains(c.Phone, search) {
			continue
		}
		if q.WithDues && !c.TotalDue.IsPositive() {
			continue
		}
		views = append(views, c.View())
	}

	if !filtered {
		return views, nil
	}
	if q.Offset >= len(views) {
		return []domain.CustomerView{}, nil
	}
	views = views[q.Offset:]
	if q.Limit < len(views) {
		views = views[:q.Limit]
	}
	return views, nil
}

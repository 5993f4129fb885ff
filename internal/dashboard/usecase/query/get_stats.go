package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash"
	customerrepo "github.com/tair/dairy-ledger/internal/customer/repository"
	expensedomain "github.com/tair/dairy-ledger/internal/expense/domain"
	expenserepo "github.com/tair/dairy-ledger/internal/expense/repository"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	productrepo "github.com/tair/dairy-ledger/internal/product/repository"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	salerepo "github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// Stats is the dashboard summary for one business date
type Stats struct {
	BusinessDate    period.Date     `json:"business_date"`
	TotalProducts   int64           `json:"total_products"`
	LowStock        int64           `json:"low_stock"`
	TotalCustomers  int64           `json:"total_customers"`
	TodaySales      decimal.Decimal `json:"today_sales"`
	TodaySalesCount int             `json:"today_sales_count"`
	TodayCollected  decimal.Decimal `json:"today_collected"`
	TodayExpenses   decimal.Decimal `json:"today_expenses"`
	CashAvailable   decimal.Decimal `json:"cash_available"`
}

// GetStatsHandler builds the dashboard summary
type GetStatsHandler struct {
	gw        store.Gateway
	cache     *cache.Cache
	threshold productdomain.LowStockThreshold
}

// NewGetStatsHandler creates a new dashboard stats handler
func NewGetStatsHandler(runner *store.Runner, c *cache.Cache, threshold productdomain.LowStockThreshold) *GetStatsHandler {
	return &GetStatsHandler{gw: runner.Gateway(), cache: c, threshold: threshold}
}

// Handle returns the summary for date, served from cache when fresh
func (h *GetStatsHandler) Handle(ctx context.Context, date period.Date) (*Stats, error) {
	key := cache.Key(cache.NSDashboard, "stats", date.String())
	return cache.Fetch(ctx, h.cache, key, func(ctx context.Context) (*Stats, error) {
		return h.load(ctx, date)
	})
}

func (h *GetStatsHandler) load(ctx context.Context, date period.Date) (*Stats, error) {
	stats := &Stats{
		BusinessDate:   date,
		TodaySales:     decimal.Zero,
		TodayCollected: decimal.Zero,
		TodayExpenses:  decimal.Zero,
	}
	day := period.Day(date)

	products, err := productrepo.NewProductRepository(h.gw).FindAll(ctx, productdomain.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	stats.TotalProducts = int64(len(products))
	for _, p := range products {
		if p.StockStatus(int(h.threshold)) != productdomain.StockIn {
			stats.LowStock++
		}
	}

	stats.TotalCustomers, err = customerrepo.NewCustomerRepository(h.gw).Count(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	sales, err := salerepo.NewSaleRepository(h.gw).List(ctx, saledomain.ListFilter{Range: &day})
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	stats.TodaySalesCount = len(sales)
	for _, s := range sales {
		stats.TodaySales = stats.TodaySales.Add(s.TotalAmount)
		stats.TodayCollected = stats.TodayCollected.Add(s.PaidAmount)
	}

	expenses, err := expenserepo.NewExpenseRepository(h.gw).List(ctx, expensedomain.ListFilter{Range: &day})
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	for _, e := range expenses {
		stats.TodayExpenses = stats.TodayExpenses.Add(e.Amount)
	}

	position, err := cash.NewCalculator(h.gw).ComputeCashPosition(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("compute cash position: %w", err)
	}
	stats.CashAvailable = position.EndingCash

	return stats, nil
}

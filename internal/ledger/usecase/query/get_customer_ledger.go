package query

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	customerdomain "github.com/tair/dairy-ledger/internal/customer/domain"
	customerrepo "github.com/tair/dairy-ledger/internal/customer/repository"
	"github.com/tair/dairy-ledger/internal/ledger"
	"github.com/tair/dairy-ledger/internal/ledger/domain"
	"github.com/tair/dairy-ledger/internal/ledger/repository"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	salerepo "github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/pkg/store"
)

// CustomerLedger is a customer's balance with the records behind it.
// InSync is false when the cached balance drifted from the records.
type CustomerLedger struct {
	Customer    customerdomain.CustomerView `json:"customer"`
	OpenSales   []saledomain.Sale           `json:"open_sales"`
	Payments    []domain.Payment            `json:"payments"`
	TotalDue    decimal.Decimal             `json:"total_due"`
	ComputedDue decimal.Decimal             `json:"computed_due"`
	InSync      bool                        `json:"in_sync"`
}

// GetCustomerLedgerHandler handles customer ledger queries
type GetCustomerLedgerHandler struct {
	gw store.Gateway
}

// NewGetCustomerLedgerHandler creates a new customer ledger handler
func NewGetCustomerLedgerHandler(runner *store.Runner) *GetCustomerLedgerHandler {
	return &GetCustomerLedgerHandler{gw: runner.Gateway()}
}

// Handle executes the customer ledger query
func (h *GetCustomerLedgerHandler) Handle(ctx context.Context, customerID uint) (*CustomerLedger, error) {
	customer, err := customerrepo.NewCustomerRepository(h.gw).FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", customerID, err)
	}

	open, err := salerepo.NewSaleRepository(h.gw).FindOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load open sales: %w", err)
	}
	payments, err := repository.NewPaymentRepository(h.gw).ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	computed, err := ledger.NewEngine(h.gw).ComputeDue(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if open == nil {
		open = []saledomain.Sale{}
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return &CustomerLedger{
		Customer:    customer.View(),
		OpenSales:   open,
		Payments:    payments,
		TotalDue:    customer.TotalDue,
		ComputedDue: computed,
		InSync:      customer.TotalDue.Equal(computed),
	}, nil
}

// Package ledger owns customer balances: charging sales to a customer,
// applying payments to their open sales and keeping the cached totalDue in
// line with the records it is derived from.
//
// totalDue = Σ sale.remaining_amount − Σ payment.unapplied_amount
//
// Build an Engine from the transactional Gateway to make its writes part of
// a larger unit of work.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	customerdomain "github.com/tair/dairy-ledger/internal/customer/domain"
	customerrepo "github.com/tair/dairy-ledger/internal/customer/repository"
	"github.com/tair/dairy-ledger/internal/ledger/domain"
	"github.com/tair/dairy-ledger/internal/ledger/repository"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	salerepo "github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/metrics"
	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ClassifyStatus maps a remaining amount to a payment status
func ClassifyStatus(remaining decimal.Decimal) saledomain.PaymentStatus {
	switch remaining.Sign() {
	case 1:
		return saledomain.StatusPartial
	case -1:
		return saledomain.StatusOverpaid
	default:
		return saledomain.StatusPaid
	}
}

// SaleEffect is the ledger outcome of a sale. NewTotalDue is nil for
// walk-in sales.
type SaleEffect struct {
	RemainingAmount decimal.Decimal          `json:"remaining_amount"`
	PaymentStatus   saledomain.PaymentStatus `json:"payment_status"`
	NewTotalDue     *decimal.Decimal         `json:"new_total_due,omitempty"`
}

// PaymentRequest is a customer payment to apply
type PaymentRequest struct {
	CustomerID     uint
	Amount         decimal.Decimal
	Method         domain.Method
	BusinessDate   period.Date
	IdempotencyKey string
	Note           string
	PaidAt         time.Time
}

// PaymentResult is the outcome of ApplyPayment. Replayed is set when the
// idempotency key named an earlier payment and nothing was applied.
type PaymentResult struct {
	Payment     *domain.Payment            `json:"payment"`
	Allocations []domain.PaymentAllocation `json:"allocations"`
	NewTotalDue decimal.Decimal            `json:"new_total_due"`
	Replayed    bool                       `json:"replayed"`
}

type Engine struct {
	customers customerdomain.CustomerRepository
	sales     saledomain.SaleRepository
	payments  domain.PaymentRepository
}

func NewEngine(gw store.Gateway) *Engine {
	return &Engine{
		customers: customerrepo.NewCustomerRepository(gw),
		sales:     salerepo.NewSaleRepository(gw),
		payments:  repository.NewPaymentRepository(gw),
	}
}

// ApplySale charges the unpaid part of a sale to the customer's balance.
// A nil customerID is a walk-in sale and touches no balance.
func (e *Engine) ApplySale(ctx context.Context, customerID *uint, totalAmount, paidAmount decimal.Decimal, date period.Date) (SaleEffect, error) {
	remaining := totalAmount.Sub(paidAmount)
	effect := SaleEffect{
		RemainingAmount: remaining,
		PaymentStatus:   ClassifyStatus(remaining),
	}
	if customerID == nil {
		return effect, nil
	}

	customer, err := e.customers.FindByID(ctx, *customerID)
	if err != nil {
		return SaleEffect{}, fmt.Errorf("load customer %d: %w", *customerID, err)
	}

	customer.TotalDue = customer.TotalDue.Add(remaining)
	customer.LastSaleDate = date
	if err := e.customers.SaveBalance(ctx, customer); err != nil {
		return SaleEffect{}, fmt.Errorf("update customer %d balance: %w", customer.ID, err)
	}

	due := customer.TotalDue
	effect.NewTotalDue = &due
	return effect, nil
}

// ApplyPayment settles the customer's open sales oldest first and lowers
// totalDue by the full amount. Money left after every open sale is settled
// stays on the payment as unapplied credit.
func (e *Engine) ApplyPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	req.Amount = money.Round(req.Amount)
	if !req.Amount.IsPositive() {
		return nil, apperr.Invalid("payment amount must be greater than zero")
	}
	if !req.Method.Valid() {
		return nil, apperr.Invalid("invalid payment method %q", req.Method)
	}
	if req.IdempotencyKey == "" {
		return nil, apperr.Invalid("idempotency key is required")
	}
	if len(req.IdempotencyKey) > domain.MaxIdempotencyKeyLen {
		return nil, apperr.Invalid("idempotency key exceeds %d characters", domain.MaxIdempotencyKeyLen)
	}
	if _, err := period.ParseDate(string(req.BusinessDate)); err != nil {
		return nil, apperr.Invalid("%v", err)
	}

	if existing, err := e.FindPayment(ctx, req.IdempotencyKey); err != nil || existing != nil {
		return existing, err
	}

	customer, err := e.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", req.CustomerID, err)
	}
	open, err := e.sales.FindOpenByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("load open sales: %w", err)
	}

	plan, unapplied := allocate(open, req.Amount)

	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	payment := &domain.Payment{
		CustomerID:      customer.ID,
		Amount:          req.Amount,
		UnappliedAmount: unapplied,
		Method:          req.Method,
		IdempotencyKey:  req.IdempotencyKey,
		BusinessDate:    req.BusinessDate,
		PaidAt:          paidAt,
		Note:            req.Note,
	}
	if err := e.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	allocations := make([]domain.PaymentAllocation, 0, len(plan))
	for _, a := range plan {
		sale := a.sale
		sale.PaidAmount = sale.PaidAmount.Add(a.amount)
		sale.RemainingAmount = sale.RemainingAmount.Sub(a.amount)
		sale.PaymentStatus = ClassifyStatus(sale.RemainingAmount)
		if err := e.sales.SaveSettlement(ctx, sale); err != nil {
			return nil, fmt.Errorf("settle sale %d: %w", sale.ID, err)
		}

		allocation := domain.PaymentAllocation{
			PaymentID: payment.ID,
			SaleID:    sale.ID,
			Amount:    a.amount,
		}
		if err := e.payments.CreateAllocation(ctx, &allocation); err != nil {
			return nil, fmt.Errorf("record allocation to sale %d: %w", sale.ID, err)
		}
		allocations = append(allocations, allocation)
	}
	payment.Allocations = allocations

	customer.TotalDue = customer.TotalDue.Sub(payment.Amount)
	customer.LastPaymentDate = req.BusinessDate
	if err := e.customers.SaveBalance(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer %d balance: %w", customer.ID, err)
	}

	metrics.PaymentsApplied.WithLabelValues(string(req.Method)).Inc()

	return &PaymentResult{
		Payment:     payment,
		Allocations: allocations,
		NewTotalDue: customer.TotalDue,
	}, nil
}

// FindPayment returns the payment recorded under key as a replay, or nil
func (e *Engine) FindPayment(ctx context.Context, key string) (*PaymentResult, error) {
	payment, err := e.payments.FindByIdempotencyKey(ctx, key)
	switch {
	case err == nil:
	case store.IsNotFound(err):
		return nil, nil
	default:
		return nil, fmt.Errorf("lookup payment by idempotency key: %w", err)
	}

	customer, err := e.customers.FindByID(ctx, payment.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer %d: %w", payment.CustomerID, err)
	}
	metrics.IdempotentReplays.WithLabelValues("payment").Inc()
	return &PaymentResult{
		Payment:     payment,
		Allocations: payment.Allocations,
		NewTotalDue: customer.TotalDue,
		Replayed:    true,
	}, nil
}

// RecomputeDue rebuilds the customer's totalDue from their sales and
// payments and stores it if the cache drifted.
func (e *Engine) RecomputeDue(ctx context.Context, customerID uint) (decimal.Decimal, error) {
	customer, err := e.customers.FindByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load customer %d: %w", customerID, err)
	}

	due, err := e.ComputeDue(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	if customer.TotalDue.Equal(due) {
		return due, nil
	}

	customer.TotalDue = due
	if err := e.customers.SaveBalance(ctx, customer); err != nil {
		return decimal.Zero, fmt.Errorf("update customer %d balance: %w", customerID, err)
	}
	return due, nil
}

// ComputeDue derives the balance from records without writing it
func (e *Engine) ComputeDue(ctx context.Context, customerID uint) (decimal.Decimal, error) {
	sales, err := e.sales.List(ctx, saledomain.ListFilter{CustomerID: &customerID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("load sales: %w", err)
	}
	payments, err := e.payments.ListByCustomer(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load payments: %w", err)
	}

	due := decimal.Zero
	for _, s := range sales {
		due = due.Add(s.RemainingAmount)
	}
	for _, p := range payments {
		due = due.Sub(p.UnappliedAmount)
	}
	return due, nil
}

type allocation struct {
	sale   *saledomain.Sale
	amount decimal.Decimal
}

// allocate spreads amount over open sales in order and returns what is left
func allocate(open []saledomain.Sale, amount decimal.Decimal) ([]allocation, decimal.Decimal) {
	left := amount
	plan := make([]allocation, 0, len(open))
	for i := range open {
		if !left.IsPositive() {
			break
		}
		due := open[i].RemainingAmount
		if !due.IsPositive() {
			continue
		}
		applied := decimal.Min(due, left)
		plan = append(plan, allocation{sale: &open[i], amount: applied})
		left = left.Sub(applied)
	}
	return plan, left
}

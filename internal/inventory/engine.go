// Package inventory keeps the per-day stock snapshots, the running product
// counter and the movement log in step with each other.
//
// An Engine is bound to a store.Gateway. To make several operations atomic,
// build the Engine from the transactional Gateway handed to
// store.Gateway.Transaction.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/internal/inventory/repository"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	productrepo "github.com/tair/dairy-ledger/internal/product/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/metrics"
	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ErrInsufficientStock is returned under the strict policy when a removal
// exceeds what remains for the day.
var ErrInsufficientStock = errors.New("insufficient stock")

// Policy controls how removals treat missing stock
type Policy struct {
	// Strict rejects removals larger than the day's remaining quantity
	Strict bool
}

// StockResult is the state after a stock operation
type StockResult struct {
	Record   *domain.DailyRecord    `json:"record"`
	Movement *domain.StockMovement  `json:"movement,omitempty"`
	Product  *productdomain.Product `json:"product"`
}

// SaleDeduction removes sold quantity from stock
type SaleDeduction struct {
	ProductID    uint
	Date         period.Date
	Quantity     decimal.Decimal
	SaleID       uint
	CustomerName string
}

type Engine struct {
	products productdomain.ProductRepository
	records  domain.InventoryRepository
	policy   Policy
}

func NewEngine(gw store.Gateway, policy Policy) *Engine {
	return &Engine{
		products: productrepo.NewProductRepository(gw),
		records:  repository.NewInventoryRepository(gw),
		policy:   policy,
	}
}

// RecordStockAddition books qty as newly added stock for date
func (e *Engine) RecordStockAddition(ctx context.Context, productID uint, date period.Date, qty decimal.Decimal, note string) (*StockResult, error) {
	if err := validate(date, qty); err != nil {
		return nil, err
	}
	product, err := e.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	return e.add(ctx, product, date, qty, domain.ReasonRestock, note)
}

// RecordSaleDeduction books sold quantity against date. The product counter
// is clamped at zero.
func (e *Engine) RecordSaleDeduction(ctx context.Context, d SaleDeduction) (*StockResult, error) {
	if err := validate(d.Date, d.Quantity); err != nil {
		return nil, err
	}
	product, err := e.products.FindByID(ctx, d.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", d.ProductID, err)
	}

	customer := d.CustomerName
	if customer == "" {
		customer = domain.WalkIn
	}
	saleID := d.SaleID
	return e.remove(ctx, product, removal{
		date:         d.Date,
		qty:          d.Quantity,
		reason:       domain.ReasonSale,
		saleID:       &saleID,
		customerName: customer,
		enforce:      e.policy.Strict,
	})
}

// RecordWaste books spoiled or discarded quantity against date
func (e *Engine) RecordWaste(ctx context.Context, productID uint, date period.Date, qty decimal.Decimal, note string) (*StockResult, error) {
	if err := validate(date, qty); err != nil {
		return nil, err
	}
	product, err := e.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	return e.remove(ctx, product, removal{
		date:    date,
		qty:     qty,
		reason:  domain.ReasonWaste,
		note:    note,
		enforce: e.policy.Strict,
	})
}

// AdjustStock sets the product counter to newQty, booking the difference as
// an addition or as waste. A zero difference changes nothing and returns a
// result without a movement.
func (e *Engine) AdjustStock(ctx context.Context, productID uint, date period.Date, newQty decimal.Decimal, note string) (*StockResult, error) {
	if _, err := period.ParseDate(string(date)); err != nil {
		return nil, apperr.Invalid("%v", err)
	}
	if newQty.IsNegative() {
		return nil, apperr.Invalid("quantity cannot be negative")
	}
	product, err := e.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}

	diff := newQty.Sub(product.Quantity)
	switch {
	case diff.IsPositive():
		return e.add(ctx, product, date, diff, domain.ReasonAdjustment, note)
	case diff.IsNegative():
		return e.remove(ctx, product, removal{
			date:   date,
			qty:    diff.Neg(),
			reason: domain.ReasonAdjustment,
			note:   note,
		})
	}

	record, err := e.project(ctx, productID, date)
	if err != nil {
		return nil, err
	}
	return &StockResult{Record: record, Product: product}, nil
}

// GetDailySummary reports the day without writing anything. A day with no
// record is projected from the latest earlier one.
func (e *Engine) GetDailySummary(ctx context.Context, productID uint, date period.Date) (domain.DailySummary, error) {
	if _, err := period.ParseDate(string(date)); err != nil {
		return domain.DailySummary{}, apperr.Invalid("%v", err)
	}
	if _, err := e.products.FindByID(ctx, productID); err != nil {
		return domain.DailySummary{}, fmt.Errorf("load product %d: %w", productID, err)
	}

	record, err := e.project(ctx, productID, date)
	if err != nil {
		return domain.DailySummary{}, err
	}
	return domain.DailySummary{
		ProductID:    productID,
		BusinessDate: date,
		TodayAdded:   record.PreviousRemaining.Add(record.NewAdded),
		TodaySold:    record.Sold,
		Waste:        record.Waste,
		Available:    record.RemainingQty,
	}, nil
}

func (e *Engine) add(ctx context.Context, product *productdomain.Product, date period.Date, qty decimal.Decimal, reason domain.MovementReason, note string) (*StockResult, error) {
	record, err := e.loadRecord(ctx, product.ID, date)
	if err != nil {
		return nil, err
	}
	record.NewAdded = record.NewAdded.Add(qty)
	record.Recompute()
	if err := e.records.UpdateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("update daily record: %w", err)
	}

	oldQty := product.Quantity
	if err := e.products.SetQuantity(ctx, product, oldQty.Add(qty)); err != nil {
		return nil, fmt.Errorf("update product quantity: %w", err)
	}

	movement := &domain.StockMovement{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Type:         domain.MovementAdd,
		Reason:       reason,
		Quantity:     qty,
		OldQuantity:  oldQty,
		NewQuantity:  product.Quantity,
		BusinessDate: date,
		Note:         note,
	}
	if err := e.appendMovement(ctx, movement); err != nil {
		return nil, err
	}
	return &StockResult{Record: record, Movement: movement, Product: product}, nil
}

type removal struct {
	date         period.Date
	qty          decimal.Decimal
	reason       domain.MovementReason
	saleID       *uint
	customerName string
	note         string
	enforce      bool
}

func (e *Engine) remove(ctx context.Context, product *productdomain.Product, r removal) (*StockResult, error) {
	record, err := e.loadRecord(ctx, product.ID, r.date)
	if err != nil {
		return nil, err
	}
	if r.enforce && r.qty.GreaterThan(record.RemainingQty) {
		return nil, fmt.Errorf("%w: %s has %s remaining, requested %s",
			ErrInsufficientStock, product.Name, record.RemainingQty, r.qty)
	}

	if r.reason == domain.ReasonSale {
		record.Sold = record.Sold.Add(r.qty)
	} else {
		record.Waste = record.Waste.Add(r.qty)
	}
	record.Recompute()
	if err := e.records.UpdateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("update daily record: %w", err)
	}

	oldQty := product.Quantity
	if err := e.products.SetQuantity(ctx, product, money.ClampZero(oldQty.Sub(r.qty))); err != nil {
		return nil, fmt.Errorf("update product quantity: %w", err)
	}

	movement := &domain.StockMovement{
		ProductID:    product.ID,
		ProductName:  product.Name,
		Type:         domain.MovementRemove,
		Reason:       r.reason,
		Quantity:     r.qty,
		OldQuantity:  oldQty,
		NewQuantity:  product.Quantity,
		BusinessDate: r.date,
		SaleID:       r.saleID,
		CustomerName: r.customerName,
		Note:         r.note,
	}
	if err := e.appendMovement(ctx, movement); err != nil {
		return nil, err
	}
	return &StockResult{Record: record, Movement: movement, Product: product}, nil
}

func (e *Engine) appendMovement(ctx context.Context, movement *domain.StockMovement) error {
	if err := e.records.AppendMovement(ctx, movement); err != nil {
		return fmt.Errorf("append stock movement: %w", err)
	}
	metrics.StockMovements.WithLabelValues(string(movement.Type), string(movement.Reason)).Inc()
	return nil
}

// loadRecord returns the persisted record for the day, creating it on
// first touch.
func (e *Engine) loadRecord(ctx context.Context, productID uint, date period.Date) (*domain.DailyRecord, error) {
	record, err := e.records.FindRecord(ctx, productID, date)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load daily record: %w", err)
	}

	record, err = e.carryForward(ctx, productID, date)
	if err != nil {
		return nil, err
	}
	if err := e.records.CreateRecord(ctx, record); err != nil {
		// Another writer created the day first; retrying re-reads it.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: daily record %d/%s created concurrently", store.ErrConflict, productID, date)
		}
		return nil, fmt.Errorf("create daily record: %w", err)
	}
	return record, nil
}

// project returns the persisted record or an unsaved carried-forward one
func (e *Engine) project(ctx context.Context, productID uint, date period.Date) (*domain.DailyRecord, error) {
	record, err := e.records.FindRecord(ctx, productID, date)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load daily record: %w", err)
	}
	return e.carryForward(ctx, productID, date)
}

func (e *Engine) carryForward(ctx context.Context, productID uint, date period.Date) (*domain.DailyRecord, error) {
	previous := decimal.Zero
	latest, err := e.records.FindLatestBefore(ctx, productID, date)
	switch {
	case err == nil:
		previous = latest.RemainingQty
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("load previous daily record: %w", err)
	}

	record := &domain.DailyRecord{
		ProductID:         productID,
		BusinessDate:      date,
		PreviousRemaining: previous,
	}
	record.Recompute()
	return record, nil
}

func validate(date period.Date, qty decimal.Decimal) error {
	if _, err := period.ParseDate(string(date)); err != nil {
		return apperr.Invalid("%v", err)
	}
	if !qty.IsPositive() {
		return apperr.Invalid("quantity must be greater than zero")
	}
	return nil
}

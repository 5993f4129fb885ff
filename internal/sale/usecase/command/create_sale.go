package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash"
	customerrepo "github.com/tair/dairy-ledger/internal/customer/repository"
	"github.com/tair/dairy-ledger/internal/inventory"
	inventorydomain "github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/internal/ledger"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	productrepo "github.com/tair/dairy-ledger/internal/product/repository"
	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/kafka"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/metrics"
	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// Step names reported when a sale fails part way
const (
	StepLoadProducts    = "load_products"
	StepCreateSale      = "create_sale"
	StepApplyLedger     = "apply_ledger"
	StepDeductInventory = "deduct_inventory"
	StepRecordCash      = "record_cash"
)

// LineItemInput is one cart line. A nil PricePerUnit uses the product's
// current price.
type LineItemInput struct {
	ProductID    uint
	Quantity     decimal.Decimal
	PricePerUnit *decimal.Decimal
}

// CreateSaleCommand represents a checkout
type CreateSaleCommand struct {
	CustomerID     *uint
	Items          []LineItemInput
	PaymentMode    domain.PaymentMode
	PaidAmount     decimal.Decimal
	BusinessDate   period.Date
	IdempotencyKey string
}

// SaleResult is the recorded sale. NewTotalDue is set for credit sales.
type SaleResult struct {
	Sale        *domain.Sale     `json:"sale"`
	NewTotalDue *decimal.Decimal `json:"new_total_due,omitempty"`
	Replayed    bool             `json:"replayed"`
}

// CreateSaleHandler records a sale, charges the customer, deducts stock and
// books the cash in one transaction.
type CreateSaleHandler struct {
	runner    *store.Runner
	policy    inventory.Policy
	threshold productdomain.LowStockThreshold
	cache     *cache.Cache
	publisher *kafka.Publisher
	now       func() time.Time
}

// NewCreateSaleHandler creates a new create sale handler
func NewCreateSaleHandler(
	runner *store.Runner,
	policy inventory.Policy,
	threshold productdomain.LowStockThreshold,
	c *cache.Cache,
	publisher *kafka.Publisher,
) *CreateSaleHandler {
	return &CreateSaleHandler{
		runner:    runner,
		policy:    policy,
		threshold: threshold,
		cache:     c,
		publisher: publisher,
		now:       time.Now,
	}
}

// cartLine is a validated, merged cart line with its product loaded
type cartLine struct {
	product  *productdomain.Product
	quantity decimal.Decimal
	price    decimal.Decimal
}

// Handle executes the create sale command
func (h *CreateSaleHandler) Handle(ctx context.Context, cmd CreateSaleCommand) (*SaleResult, error) {
	cmd = normalize(cmd)
	if err := validate(cmd); err != nil {
		return nil, err
	}
	if cmd.IdempotencyKey == "" {
		cmd.IdempotencyKey = uuid.NewString()
	} else if replay, err := h.replay(ctx, cmd.IdempotencyKey); err != nil || replay != nil {
		return replay, err
	}

	var (
		result *SaleResult
		events []kafka.Event
	)
	err := h.runner.Run(ctx, "create_sale", func(tx store.Gateway) error {
		var err error
		result, events, err = h.record(ctx, tx, cmd)
		return err
	})
	if errors.Is(err, store.ErrDuplicate) && apperr.FailedStep(err) == StepCreateSale {
		// A concurrent request with the same key committed first.
		if replay, findErr := h.replay(ctx, cmd.IdempotencyKey); findErr == nil && replay != nil {
			return replay, nil
		}
	}
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("step", apperr.FailedStep(err)).
			Str("idempotency_key", cmd.IdempotencyKey).
			Msg("Sale failed")
		return nil, err
	}

	sale := result.Sale
	metrics.SalesRecorded.WithLabelValues(string(sale.PaymentMode), string(sale.PaymentStatus)).Inc()
	metrics.SaleAmount.Add(sale.TotalAmount.InexactFloat64())

	h.cache.Invalidate(ctx, cache.NSDashboard, cache.NSCash, cache.NSInventory)
	h.publisher.PublishAll(ctx, events...)

	logger.Info(ctx).
		Uint("sale_id", sale.ID).
		Str("customer", sale.CustomerName).
		Str("total", sale.TotalAmount.String()).
		Str("paid", sale.PaidAmount.String()).
		Str("status", string(sale.PaymentStatus)).
		Int("items", len(sale.Items)).
		Msg("Sale recorded")

	return result, nil
}

// record runs every step of the sale against tx
func (h *CreateSaleHandler) record(ctx context.Context, tx store.Gateway, cmd CreateSaleCommand) (*SaleResult, []kafka.Event, error) {
	lines, err := h.loadLines(ctx, tx, cmd.Items)
	if err != nil {
		return nil, nil, apperr.Step(StepLoadProducts, err)
	}

	customerName := inventorydomain.WalkIn
	customerPhone := ""
	if cmd.CustomerID != nil {
		customer, err := customerrepo.NewCustomerRepository(tx).FindByID(ctx, *cmd.CustomerID)
		if err != nil {
			return nil, nil, apperr.Step(StepApplyLedger, fmt.Errorf("customer %d: %w", *cmd.CustomerID, err))
		}
		if !customer.IsActive {
			return nil, nil, apperr.Step(StepApplyLedger, apperr.Invalid("customer %q is inactive", customer.Name))
		}
		customerName, customerPhone = customer.Name, customer.Phone
	}

	items := make([]domain.LineItem, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		item := domain.LineItem{
			ProductID:    l.product.ID,
			ProductName:  l.product.Name,
			Unit:         string(l.product.Unit),
			Quantity:     l.quantity,
			PricePerUnit: l.price,
			TotalPrice:   money.LineTotal(l.quantity, l.price),
		}
		total = total.Add(item.TotalPrice)
		items = append(items, item)
	}
	paid := cmd.PaidAmount
	remaining := total.Sub(paid)

	sales := repository.NewSaleRepository(tx)
	sale := &domain.Sale{
		CustomerID:      cmd.CustomerID,
		CustomerName:    customerName,
		TotalAmount:     total,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		PaymentMode:     cmd.PaymentMode,
		PaymentStatus:   ledger.ClassifyStatus(remaining),
		IdempotencyKey:  cmd.IdempotencyKey,
		BusinessDate:    cmd.BusinessDate,
		SoldAt:          h.now().UTC(),
	}
	if err := sales.Create(ctx, sale); err != nil {
		return nil, nil, apperr.Step(StepCreateSale, err)
	}
	for i := range items {
		items[i].SaleID = sale.ID
		if err := sales.CreateItem(ctx, &items[i]); err != nil {
			return nil, nil, apperr.Step(StepCreateSale, err)
		}
	}
	sale.Items = items

	effect, err := ledger.NewEngine(tx).ApplySale(ctx, cmd.CustomerID, total, paid, cmd.BusinessDate)
	if err != nil {
		return nil, nil, apperr.Step(StepApplyLedger, err)
	}

	stock := inventory.NewEngine(tx, h.policy)
	// Final stock per product, in cart order, so a product sold at two
	// prices raises at most one alert.
	var deducted []*productdomain.Product
	seen := make(map[uint]int)
	for _, l := range lines {
		res, err := stock.RecordSaleDeduction(ctx, inventory.SaleDeduction{
			ProductID:    l.product.ID,
			Date:         cmd.BusinessDate,
			Quantity:     l.quantity,
			SaleID:       sale.ID,
			CustomerName: customerName,
		})
		if err != nil {
			return nil, nil, apperr.Step(StepDeductInventory+":"+l.product.Name, err)
		}
		if i, ok := seen[res.Product.ID]; ok {
			deducted[i] = res.Product
			continue
		}
		seen[res.Product.ID] = len(deducted)
		deducted = append(deducted, res.Product)
	}

	var events []kafka.Event
	for _, p := range deducted {
		if p.Quantity.LessThanOrEqual(decimal.NewFromInt(int64(h.threshold))) {
			events = append(events, &kafka.StockLowEvent{
				ProductID:   p.ID,
				ProductName: p.Name,
				Unit:        string(p.Unit),
				Quantity:    p.Quantity,
				Threshold:   int(h.threshold),
			})
		}
	}

	if paid.IsPositive() {
		if _, err := cash.NewJournal(tx).RecordSale(ctx, sale.ID, paid, cmd.BusinessDate); err != nil {
			return nil, nil, apperr.Step(StepRecordCash, err)
		}
	}

	recorded := &kafka.SaleRecordedEvent{
		SaleID:          sale.ID,
		CustomerID:      sale.CustomerID,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		TotalAmount:     total,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		PaymentMode:     string(sale.PaymentMode),
		NewTotalDue:     effect.NewTotalDue,
		BusinessDate:    cmd.BusinessDate.String(),
	}
	for _, item := range items {
		recorded.Items = append(recorded.Items, kafka.SaleItem{
			ProductName: item.ProductName,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}
	events = append([]kafka.Event{recorded}, events...)

	return &SaleResult{Sale: sale, NewTotalDue: effect.NewTotalDue}, events, nil
}

// loadLines merges cart lines for the same product and price and loads
// each product once.
func (h *CreateSaleHandler) loadLines(ctx context.Context, tx store.Gateway, inputs []LineItemInput) ([]cartLine, error) {
	products := productrepo.NewProductRepository(tx)
	loaded := make(map[uint]*productdomain.Product)

	var lines []cartLine
	for _, in := range inputs {
		product, ok := loaded[in.ProductID]
		if !ok {
			var err error
			product, err = products.FindByID(ctx, in.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product %d: %w", in.ProductID, err)
			}
			if !product.IsActive {
				return nil, apperr.Invalid("product %q is not available", product.Name)
			}
			loaded[in.ProductID] = product
		}

		price := product.PricePerUnit
		if in.PricePerUnit != nil {
			price = *in.PricePerUnit
		}

		merged := false
		for i := range lines {
			if lines[i].product.ID == product.ID && lines[i].price.Equal(price) {
				lines[i].quantity = lines[i].quantity.Add(in.Quantity)
				merged = true
				break
			}
		}
		if !merged {
			lines = append(lines, cartLine{product: product, quantity: in.Quantity, price: price})
		}
	}
	return lines, nil
}

// replay returns the sale already recorded under key, or nil
func (h *CreateSaleHandler) replay(ctx context.Context, key string) (*SaleResult, error) {
	gw := h.runner.Gateway()
	sale, err := repository.NewSaleRepository(gw).FindByIdempotencyKey(ctx, key)
	switch {
	case err == nil:
	case store.IsNotFound(err):
		return nil, nil
	default:
		return nil, fmt.Errorf("lookup sale by idempotency key: %w", err)
	}

	result := &SaleResult{Sale: sale, Replayed: true}
	if sale.CustomerID != nil {
		customer, err := customerrepo.NewCustomerRepository(gw).FindByID(ctx, *sale.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("load customer %d: %w", *sale.CustomerID, err)
		}
		due := customer.TotalDue
		result.NewTotalDue = &due
	}
	metrics.IdempotentReplays.WithLabelValues("sale").Inc()
	return result, nil
}

// normalize rounds money to paise and quantities to three places so that
// validation sees the values that get stored.
func normalize(cmd CreateSaleCommand) CreateSaleCommand {
	cmd.PaidAmount = money.Round(cmd.PaidAmount)
	items := make([]LineItemInput, len(cmd.Items))
	for i, item := range cmd.Items {
		item.Quantity = item.Quantity.Round(3)
		if item.PricePerUnit != nil {
			price := money.Round(*item.PricePerUnit)
			item.PricePerUnit = &price
		}
		items[i] = item
	}
	cmd.Items = items
	return cmd
}

func validate(cmd CreateSaleCommand) error {
	if len(cmd.Items) == 0 {
		return apperr.Invalid("cart is empty")
	}
	if !cmd.PaymentMode.Valid() {
		return apperr.Invalid("invalid payment mode %q", cmd.PaymentMode)
	}
	if cmd.PaymentMode == domain.ModePending && cmd.CustomerID == nil {
		return apperr.Invalid("a customer is required for pending payment")
	}
	if len(cmd.IdempotencyKey) > domain.MaxIdempotencyKeyLen {
		return apperr.Invalid("idempotency key exceeds %d characters", domain.MaxIdempotencyKeyLen)
	}
	if cmd.PaidAmount.IsNegative() {
		return apperr.Invalid("paid amount cannot be negative")
	}
	if _, err := period.ParseDate(string(cmd.BusinessDate)); err != nil {
		return apperr.Invalid("%v", err)
	}
	for i, item := range cmd.Items {
		if item.ProductID == 0 {
			return apperr.Invalid("item %d: product is required", i+1)
		}
		if !item.Quantity.IsPositive() {
			return apperr.Invalid("item %d: quantity must be greater than zero", i+1)
		}
		if item.PricePerUnit != nil && item.PricePerUnit.IsNegative() {
			return apperr.Invalid("item %d: price cannot be negative", i+1)
		}
	}
	return nil
}

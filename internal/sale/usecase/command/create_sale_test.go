package command_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cashdomain "github.com/tair/dairy-ledger/internal/cash/domain"
	customerdomain "github.com/tair/dairy-ledger/internal/customer/domain"
	"github.com/tair/dairy-ledger/internal/inventory"
	inventorydomain "github.com/tair/dairy-ledger/internal/inventory/domain"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/internal/sale/usecase/command"
	"github.com/tair/dairy-ledger/kafka"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

const today = period.Date("2026-10-18")

type fixture struct {
	gw       store.Gateway
	milk     *productdomain.Product
	curd     *productdomain.Product
	customer *customerdomain.Customer
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	gw := storetest.NewGateway(t,
		&productdomain.Product{}, &customerdomain.Customer{},
		&domain.Sale{}, &domain.LineItem{},
		&inventorydomain.DailyRecord{}, &inventorydomain.StockMovement{},
		&cashdomain.CashEntry{},
	)

	f := &fixture{gw: gw}
	f.milk = &productdomain.Product{Name: "Toned Milk", Unit: productdomain.UnitLiter, PricePerUnit: dec("50"), Quantity: decimal.Zero, IsActive: true}
	f.curd = &productdomain.Product{Name: "Curd", Unit: productdomain.UnitKg, PricePerUnit: dec("80"), Quantity: decimal.Zero, IsActive: true}
	f.customer = &customerdomain.Customer{Name: "Ramesh", Phone: "9800000001", TotalDue: dec("20"), IsActive: true}
	require.NoError(t, gw.Create(ctx, f.milk))
	require.NoError(t, gw.Create(ctx, f.curd))
	require.NoError(t, gw.Create(ctx, f.customer))

	stock := inventory.NewEngine(gw, inventory.Policy{})
	_, err := stock.RecordStockAddition(ctx, f.milk.ID, today, dec("10"), "")
	require.NoError(t, err)
	_, err = stock.RecordStockAddition(ctx, f.curd.ID, today, dec("5"), "")
	require.NoError(t, err)
	return f
}

func (f *fixture) handler(policy inventory.Policy, publisher *kafka.Publisher) *command.CreateSaleHandler {
	return command.NewCreateSaleHandler(store.NewRunner(f.gw, 3), policy, productdomain.LowStockThreshold(2), nil, publisher)
}

func (f *fixture) product(t *testing.T, id uint) *productdomain.Product {
	t.Helper()
	var p productdomain.Product
	require.NoError(t, f.gw.Get(context.Background(), id, &p))
	return &p
}

func (f *fixture) due(t *testing.T) decimal.Decimal {
	t.Helper()
	var c customerdomain.Customer
	require.NoError(t, f.gw.Get(context.Background(), f.customer.ID, &c))
	return c.TotalDue
}

func (f *fixture) count(t *testing.T, model store.Document) int64 {
	t.Helper()
	n, err := f.gw.Count(context.Background(), model, store.Q())
	require.NoError(t, err)
	return n
}

func TestPartialCreditSaleRaisesDue(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	result, err := f.handler(inventory.Policy{}, nil).Handle(ctx, command.CreateSaleCommand{
		CustomerID: &f.customer.ID,
		Items: []command.LineItemInput{
			{ProductID: f.milk.ID, Quantity: dec("1")},
			{ProductID: f.curd.ID, Quantity: dec("1")},
		},
		PaymentMode:  domain.ModeCash,
		PaidAmount:   dec("100"),
		BusinessDate: today,
	})
	require.NoError(t, err)

	sale := result.Sale
	assertDec(t, "130", sale.TotalAmount)
	assertDec(t, "100", sale.PaidAmount)
	assertDec(t, "30", sale.RemainingAmount)
	assert.Equal(t, domain.StatusPartial, sale.PaymentStatus)
	assert.Equal(t, "Ramesh", sale.CustomerName)
	assert.Len(t, sale.Items, 2)
	assert.NotEmpty(t, sale.IdempotencyKey)

	require.NotNil(t, result.NewTotalDue)
	assertDec(t, "50", *result.NewTotalDue)
	assertDec(t, "50", f.due(t))

	assertDec(t, "9", f.product(t, f.milk.ID).Quantity)
	assertDec(t, "4", f.product(t, f.curd.ID).Quantity)

	var entries []cashdomain.CashEntry
	require.NoError(t, f.gw.Query(ctx, &entries, store.Q()))
	require.Len(t, entries, 1)
	assertDec(t, "100", entries[0].Amount)
	assert.Equal(t, cashdomain.SourceSale, entries[0].Source)
}

func TestWalkInSaleDeductsStock(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	price := dec("30")
	result, err := f.handler(inventory.Policy{}, nil).Handle(ctx, command.CreateSaleCommand{
		Items:        []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("2"), PricePerUnit: &price}},
		PaymentMode:  domain.ModeUPI,
		PaidAmount:   dec("60"),
		BusinessDate: today,
	})
	require.NoError(t, err)

	assert.Nil(t, result.NewTotalDue)
	assert.Nil(t, result.Sale.CustomerID)
	assert.Equal(t, inventorydomain.WalkIn, result.Sale.CustomerName)
	assert.Equal(t, domain.StatusPaid, result.Sale.PaymentStatus)
	assertDec(t, "8", f.product(t, f.milk.ID).Quantity)
	assertDec(t, "20", f.due(t))

	var movements []inventorydomain.StockMovement
	require.NoError(t, f.gw.Query(ctx, &movements, store.Q().Where("reason", store.Eq, inventorydomain.ReasonSale)))
	require.Len(t, movements, 1)
	assert.Equal(t, inventorydomain.WalkIn, movements[0].CustomerName)
	require.NotNil(t, movements[0].SaleID)
	assert.Equal(t, result.Sale.ID, *movements[0].SaleID)
}

func TestCartLinesMergeByProductAndPrice(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	special := dec("45")
	result, err := f.handler(inventory.Policy{}, nil).Handle(ctx, command.CreateSaleCommand{
		CustomerID: &f.customer.ID,
		Items: []command.LineItemInput{
			{ProductID: f.milk.ID, Quantity: dec("1")},
			{ProductID: f.milk.ID, Quantity: dec("0.5")},
			{ProductID: f.milk.ID, Quantity: dec("1"), PricePerUnit: &special},
		},
		PaymentMode:  domain.ModePending,
		BusinessDate: today,
	})
	require.NoError(t, err)

	require.Len(t, result.Sale.Items, 2)
	assertDec(t, "1.5", result.Sale.Items[0].Quantity)
	assertDec(t, "50", result.Sale.Items[0].PricePerUnit)
	assertDec(t, "75", result.Sale.Items[0].TotalPrice)
	assertDec(t, "45", result.Sale.Items[1].TotalPrice)
	assertDec(t, "120", result.Sale.TotalAmount)
	assertDec(t, "7.5", f.product(t, f.milk.ID).Quantity)
	assert.EqualValues(t, 0, f.count(t, &cashdomain.CashEntry{}))
}

func TestReplayHasNoSecondEffect(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	handler := f.handler(inventory.Policy{}, nil)

	cmd := command.CreateSaleCommand{
		CustomerID:     &f.customer.ID,
		Items:          []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("2")}},
		PaymentMode:    domain.ModeCash,
		PaidAmount:     dec("40"),
		BusinessDate:   today,
		IdempotencyKey: "till-1-0042",
	}
	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Sale.ID, second.Sale.ID)
	require.NotNil(t, second.NewTotalDue)
	assertDec(t, "80", *second.NewTotalDue)

	assert.EqualValues(t, 1, f.count(t, &domain.Sale{}))
	assert.EqualValues(t, 1, f.count(t, &cashdomain.CashEntry{}))
	assertDec(t, "8", f.product(t, f.milk.ID).Quantity)
	assertDec(t, "80", f.due(t))
}

func TestFailedStepRollsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("missing product", func(t *testing.T) {
		f := setup(t)
		_, err := f.handler(inventory.Policy{}, nil).Handle(ctx, command.CreateSaleCommand{
			CustomerID:   &f.customer.ID,
			Items:        []command.LineItemInput{{ProductID: 999, Quantity: dec("1")}},
			PaymentMode:  domain.ModePending,
			BusinessDate: today,
		})
		require.ErrorIs(t, err, store.ErrNotFound)
		assert.Equal(t, command.StepLoadProducts, apperr.FailedStep(err))
		assert.EqualValues(t, 0, f.count(t, &domain.Sale{}))
	})

	t.Run("strict oversell", func(t *testing.T) {
		f := setup(t)
		_, err := f.handler(inventory.Policy{Strict: true}, nil).Handle(ctx, command.CreateSaleCommand{
			CustomerID: &f.customer.ID,
			Items: []command.LineItemInput{
				{ProductID: f.milk.ID, Quantity: dec("2")},
				{ProductID: f.curd.ID, Quantity: dec("6")},
			},
			PaymentMode:  domain.ModeCash,
			PaidAmount:   dec("100"),
			BusinessDate: today,
		})
		require.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Equal(t, command.StepDeductInventory+":Curd", apperr.FailedStep(err))

		assert.EqualValues(t, 0, f.count(t, &domain.Sale{}))
		assert.EqualValues(t, 0, f.count(t, &domain.LineItem{}))
		assert.EqualValues(t, 0, f.count(t, &cashdomain.CashEntry{}))
		assertDec(t, "10", f.product(t, f.milk.ID).Quantity)
		assertDec(t, "20", f.due(t))
	})
}

func TestValidationRejectsBeforeWriting(t *testing.T) {
	f := setup(t)
	handler := f.handler(inventory.Policy{}, nil)
	negative := dec("-1")

	cases := []struct {
		name string
		cmd  command.CreateSaleCommand
	}{
		{"empty cart", command.CreateSaleCommand{PaymentMode: domain.ModeCash, BusinessDate: today}},
		{"pending walk-in", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1")}},
			PaymentMode: domain.ModePending, BusinessDate: today,
		}},
		{"unknown mode", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1")}},
			PaymentMode: "card", BusinessDate: today,
		}},
		{"zero quantity", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: decimal.Zero}},
			PaymentMode: domain.ModeCash, BusinessDate: today,
		}},
		{"negative price", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1"), PricePerUnit: &negative}},
			PaymentMode: domain.ModeCash, BusinessDate: today,
		}},
		{"negative paid", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1")}},
			PaymentMode: domain.ModeCash, PaidAmount: negative, BusinessDate: today,
		}},
		{"bad date", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1")}},
			PaymentMode: domain.ModeCash, BusinessDate: "18/10/2026",
		}},
		{"quantity below a gram", command.CreateSaleCommand{
			Items:       []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("0.0004")}},
			PaymentMode: domain.ModeCash, BusinessDate: today,
		}},
		{"long idempotency key", command.CreateSaleCommand{
			Items:          []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1")}},
			PaymentMode:    domain.ModeCash,
			BusinessDate:   today,
			IdempotencyKey: strings.Repeat("k", domain.MaxIdempotencyKeyLen+1),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tc.cmd)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
	assert.EqualValues(t, 0, f.count(t, &domain.Sale{}))
}

func TestSalePublishesEvents(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()
	defer producer.Close()

	_, err := f.handler(inventory.Policy{}, kafka.NewPublisherWithProducer(producer)).Handle(ctx, command.CreateSaleCommand{
		CustomerID:   &f.customer.ID,
		Items:        []command.LineItemInput{{ProductID: f.curd.ID, Quantity: dec("4")}},
		PaymentMode:  domain.ModePending,
		BusinessDate: today,
	})
	require.NoError(t, err)
	assertDec(t, "1", f.product(t, f.curd.ID).Quantity)
}

func TestSubPaiseAmountsRoundBeforeRecording(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	price := dec("49.996")
	result, err := f.handler(inventory.Policy{}, nil).Handle(ctx, command.CreateSaleCommand{
		Items:        []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1"), PricePerUnit: &price}},
		PaymentMode:  domain.ModeCash,
		PaidAmount:   dec("0.004"),
		BusinessDate: today,
	})
	require.NoError(t, err)

	assertDec(t, "50", result.Sale.Items[0].PricePerUnit)
	assertDec(t, "0", result.Sale.PaidAmount)
	assertDec(t, "50", result.Sale.RemainingAmount)
	assert.EqualValues(t, 0, f.count(t, &cashdomain.CashEntry{}))
}

func TestInactiveCustomerCannotBeCharged(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	require.NoError(t, f.gw.Update(ctx, &customerdomain.Customer{}, f.customer.ID, map[string]interface{}{"is_active": false}))

	_, err := f.handler(inventory.Policy{}, nil).Handle(ctx, command.CreateSaleCommand{
		CustomerID:   &f.customer.ID,
		Items:        []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("1")}},
		PaymentMode:  domain.ModePending,
		BusinessDate: today,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, command.StepApplyLedger, apperr.FailedStep(err))

	assert.EqualValues(t, 0, f.count(t, &domain.Sale{}))
	assertDec(t, "20", f.due(t))
	assertDec(t, "10", f.product(t, f.milk.ID).Quantity)
}

func TestStockLowRaisedOncePerProduct(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// One sale.recorded and one stock.low; a third message fails the mock.
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()
	defer producer.Close()

	discount := dec("70")
	_, err := f.handler(inventory.Policy{}, kafka.NewPublisherWithProducer(producer)).Handle(ctx, command.CreateSaleCommand{
		CustomerID: &f.customer.ID,
		Items: []command.LineItemInput{
			{ProductID: f.curd.ID, Quantity: dec("3.5")},
			{ProductID: f.curd.ID, Quantity: dec("1"), PricePerUnit: &discount},
		},
		PaymentMode:  domain.ModePending,
		BusinessDate: today,
	})
	require.NoError(t, err)
	assertDec(t, "0.5", f.product(t, f.curd.ID).Quantity)
}

// conflictOnce fails the first versioned write to table with ErrConflict,
// as if another till had updated the row after it was read.
type conflictOnce struct {
	store.Gateway
	table string
	fired *bool
}

func (g conflictOnce) CompareAndUpdate(ctx context.Context, model store.Document, id uint, version int64, fields map[string]interface{}) error {
	if model.TableName() == g.table && !*g.fired {
		*g.fired = true
		return fmt.Errorf("%w: %s %d", store.ErrConflict, g.table, id)
	}
	return g.Gateway.CompareAndUpdate(ctx, model, id, version, fields)
}

func (g conflictOnce) Transaction(ctx context.Context, fn func(tx store.Gateway) error) error {
	return g.Gateway.Transaction(ctx, func(tx store.Gateway) error {
		return fn(conflictOnce{Gateway: tx, table: g.table, fired: g.fired})
	})
}

func TestConflictRetriesWholeSale(t *testing.T) {
	ctx := context.Background()
	cmd := func(f *fixture) command.CreateSaleCommand {
		return command.CreateSaleCommand{
			CustomerID:   &f.customer.ID,
			Items:        []command.LineItemInput{{ProductID: f.milk.ID, Quantity: dec("2")}},
			PaymentMode:  domain.ModeCash,
			PaidAmount:   dec("40"),
			BusinessDate: today,
		}
	}

	t.Run("retried once", func(t *testing.T) {
		f := setup(t)
		fired := false
		gw := conflictOnce{Gateway: f.gw, table: customerdomain.Customer{}.TableName(), fired: &fired}
		handler := command.NewCreateSaleHandler(store.NewRunner(gw, 3), inventory.Policy{}, productdomain.LowStockThreshold(2), nil, nil)

		result, err := handler.Handle(ctx, cmd(f))
		require.NoError(t, err)
		assert.True(t, fired)
		require.NotNil(t, result.NewTotalDue)
		assertDec(t, "80", *result.NewTotalDue)

		assert.EqualValues(t, 1, f.count(t, &domain.Sale{}))
		assert.EqualValues(t, 1, f.count(t, &domain.LineItem{}))
		assert.EqualValues(t, 1, f.count(t, &cashdomain.CashEntry{}))
		assertDec(t, "80", f.due(t))
		assertDec(t, "8", f.product(t, f.milk.ID).Quantity)
	})

	t.Run("attempts exhausted", func(t *testing.T) {
		f := setup(t)
		fired := false
		gw := conflictOnce{Gateway: f.gw, table: customerdomain.Customer{}.TableName(), fired: &fired}
		handler := command.NewCreateSaleHandler(store.NewRunner(gw, 1), inventory.Policy{}, productdomain.LowStockThreshold(2), nil, nil)

		_, err := handler.Handle(ctx, cmd(f))
		require.ErrorIs(t, err, store.ErrConflict)
		assert.Equal(t, command.StepApplyLedger, apperr.FailedStep(err))

		assert.EqualValues(t, 0, f.count(t, &domain.Sale{}))
		assert.EqualValues(t, 0, f.count(t, &cashdomain.CashEntry{}))
		assertDec(t, "20", f.due(t))
		assertDec(t, "10", f.product(t, f.milk.ID).Quantity)
	})
}

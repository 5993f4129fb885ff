package inventory_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/internal/inventory/repository"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

const (
	day1 = period.Date("2026-10-01")
	day2 = period.Date("2026-10-02")
	day3 = period.Date("2026-10-03")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func setup(t *testing.T) (store.Gateway, *productdomain.Product) {
	t.Helper()
	gw := storetest.NewGateway(t, &productdomain.Product{}, &domain.DailyRecord{}, &domain.StockMovement{})

	product := &productdomain.Product{
		Name:         "Toned Milk",
		Unit:         productdomain.UnitLiter,
		PricePerUnit: dec("30"),
		Quantity:     decimal.Zero,
		IsActive:     true,
	}
	require.NoError(t, gw.Create(context.Background(), product))
	return gw, product
}

func reloadProduct(t *testing.T, gw store.Gateway, id uint) *productdomain.Product {
	t.Helper()
	var p productdomain.Product
	require.NoError(t, gw.Get(context.Background(), id, &p))
	return &p
}

func TestRecordStockAdditionCarriesForward(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})

	_, err := engine.RecordStockAddition(ctx, product.ID, day1, dec("10"), "morning delivery")
	require.NoError(t, err)
	_, err = engine.RecordSaleDeduction(ctx, inventory.SaleDeduction{ProductID: product.ID, Date: day1, Quantity: dec("4"), SaleID: 1})
	require.NoError(t, err)

	result, err := engine.RecordStockAddition(ctx, product.ID, day2, dec("5"), "")
	require.NoError(t, err)

	assertDec(t, "6", result.Record.PreviousRemaining)
	assertDec(t, "5", result.Record.NewAdded)
	assertDec(t, "11", result.Record.TotalAvailable)
	assertDec(t, "11", result.Record.RemainingQty)
	assertDec(t, "11", reloadProduct(t, gw, product.ID).Quantity)

	assert.Equal(t, domain.MovementAdd, result.Movement.Type)
	assert.Equal(t, domain.ReasonRestock, result.Movement.Reason)

	movements, err := repository.NewInventoryRepository(gw).ListMovements(ctx, domain.MovementFilter{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Len(t, movements, 3)
}

func TestSaleDeductionClampsAtZero(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})

	_, err := engine.RecordStockAddition(ctx, product.ID, day1, dec("5"), "")
	require.NoError(t, err)

	result, err := engine.RecordSaleDeduction(ctx, inventory.SaleDeduction{
		ProductID: product.ID,
		Date:      day2,
		Quantity:  dec("8"),
		SaleID:    42,
	})
	require.NoError(t, err)

	assertDec(t, "5", result.Record.PreviousRemaining)
	assertDec(t, "0", result.Record.NewAdded)
	assertDec(t, "8", result.Record.Sold)
	assertDec(t, "0", result.Record.RemainingQty)
	assertDec(t, "0", reloadProduct(t, gw, product.ID).Quantity)

	require.NotNil(t, result.Movement.SaleID)
	assert.EqualValues(t, 42, *result.Movement.SaleID)
	assert.Equal(t, domain.WalkIn, result.Movement.CustomerName)
	assert.Equal(t, domain.ReasonSale, result.Movement.Reason)
	assertDec(t, "5", result.Movement.OldQuantity)
	assertDec(t, "0", result.Movement.NewQuantity)

	var movements []domain.StockMovement
	require.NoError(t, gw.Query(ctx, &movements, store.Q().Where("reason", store.Eq, string(domain.ReasonSale))))
	require.Len(t, movements, 1)
	assertDec(t, "5", movements[0].OldQuantity)
	assertDec(t, "0", movements[0].NewQuantity)
}

func TestStrictPolicyRejectsOversellAndRollsBack(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)

	_, err := inventory.NewEngine(gw, inventory.Policy{}).RecordStockAddition(ctx, product.ID, day1, dec("3"), "")
	require.NoError(t, err)

	runner := store.NewRunner(gw, 1)
	err = runner.Run(ctx, "test", func(tx store.Gateway) error {
		_, err := inventory.NewEngine(tx, inventory.Policy{Strict: true}).RecordSaleDeduction(ctx, inventory.SaleDeduction{
			ProductID: product.ID,
			Date:      day1,
			Quantity:  dec("4"),
			SaleID:    7,
		})
		return err
	})
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)

	assertDec(t, "3", reloadProduct(t, gw, product.ID).Quantity)
	record, err := repository.NewInventoryRepository(gw).FindRecord(ctx, product.ID, day1)
	require.NoError(t, err)
	assertDec(t, "0", record.Sold)
}

func TestRecordWaste(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})

	_, err := engine.RecordStockAddition(ctx, product.ID, day1, dec("10"), "")
	require.NoError(t, err)

	result, err := engine.RecordWaste(ctx, product.ID, day1, dec("2.5"), "curdled")
	require.NoError(t, err)

	assertDec(t, "2.5", result.Record.Waste)
	assertDec(t, "7.5", result.Record.RemainingQty)
	assertDec(t, "7.5", reloadProduct(t, gw, product.ID).Quantity)
	assert.Equal(t, domain.ReasonWaste, result.Movement.Reason)
	assert.Equal(t, "curdled", result.Movement.Note)
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})

	_, err := engine.RecordStockAddition(ctx, product.ID, day1, dec("10"), "")
	require.NoError(t, err)

	down, err := engine.AdjustStock(ctx, product.ID, day1, dec("7"), "recount")
	require.NoError(t, err)
	assert.Equal(t, domain.MovementRemove, down.Movement.Type)
	assert.Equal(t, domain.ReasonAdjustment, down.Movement.Reason)
	assertDec(t, "3", down.Movement.Quantity)
	assertDec(t, "7", down.Product.Quantity)

	up, err := engine.AdjustStock(ctx, product.ID, day1, dec("12"), "")
	require.NoError(t, err)
	assert.Equal(t, domain.MovementAdd, up.Movement.Type)
	assertDec(t, "5", up.Movement.Quantity)
	assertDec(t, "12", reloadProduct(t, gw, product.ID).Quantity)

	same, err := engine.AdjustStock(ctx, product.ID, day1, dec("12"), "")
	require.NoError(t, err)
	assert.Nil(t, same.Movement)

	_, err = engine.AdjustStock(ctx, product.ID, day1, dec("-1"), "")
	assert.True(t, apperr.IsValidation(err))
}

func TestGetDailySummaryProjectsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})

	_, err := engine.RecordStockAddition(ctx, product.ID, day1, dec("10"), "")
	require.NoError(t, err)
	_, err = engine.RecordSaleDeduction(ctx, inventory.SaleDeduction{ProductID: product.ID, Date: day1, Quantity: dec("3"), SaleID: 1})
	require.NoError(t, err)

	today, err := engine.GetDailySummary(ctx, product.ID, day1)
	require.NoError(t, err)
	assertDec(t, "10", today.TodayAdded)
	assertDec(t, "3", today.TodaySold)
	assertDec(t, "7", today.Available)

	later, err := engine.GetDailySummary(ctx, product.ID, day3)
	require.NoError(t, err)
	assertDec(t, "7", later.TodayAdded)
	assertDec(t, "0", later.TodaySold)
	assertDec(t, "7", later.Available)

	n, err := gw.Count(ctx, &domain.DailyRecord{}, store.Q())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = engine.GetDailySummary(ctx, 999, day1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})

	_, err := engine.RecordStockAddition(ctx, product.ID, day1, decimal.Zero, "")
	assert.True(t, apperr.IsValidation(err))

	_, err = engine.RecordWaste(ctx, product.ID, "01-10-2026", dec("1"), "")
	assert.True(t, apperr.IsValidation(err))

	_, err = engine.RecordStockAddition(ctx, 999, day1, dec("1"), "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRemainingInvariantHoldsForRandomOperations(t *testing.T) {
	ctx := context.Background()
	gw, product := setup(t)
	engine := inventory.NewEngine(gw, inventory.Policy{})
	rng := rand.New(rand.NewSource(7))
	days := []period.Date{day1, day2, day3}

	for i := 0; i < 60; i++ {
		date := days[i/20]
		qty := decimal.NewFromInt(int64(rng.Intn(9) + 1))

		var err error
		switch rng.Intn(3) {
		case 0:
			_, err = engine.RecordStockAddition(ctx, product.ID, date, qty, "")
		case 1:
			_, err = engine.RecordSaleDeduction(ctx, inventory.SaleDeduction{ProductID: product.ID, Date: date, Quantity: qty, SaleID: uint(i + 1)})
		default:
			_, err = engine.RecordWaste(ctx, product.ID, date, qty, "")
		}
		require.NoError(t, err)
		require.False(t, reloadProduct(t, gw, product.ID).Quantity.IsNegative())
	}

	repo := repository.NewInventoryRepository(gw)
	for _, date := range days {
		records, err := repo.ListRecords(ctx, date)
		require.NoError(t, err)
		require.Len(t, records, 1)

		r := records[0]
		expected := money.ClampZero(r.PreviousRemaining.Add(r.NewAdded).Sub(r.Sold).Sub(r.Waste))
		assert.True(t, expected.Equal(r.RemainingQty), "day %s", date)
	}
}

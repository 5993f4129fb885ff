package cash_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/internal/cash/domain"
	expensedomain "github.com/tair/dairy-ledger/internal/expense/domain"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

const (
	day1 = period.Date("2026-10-01")
	day2 = period.Date("2026-10-02")
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func newGateway(t *testing.T) store.Gateway {
	t.Helper()
	return storetest.NewGateway(t,
		&domain.CashEntry{}, &domain.StartingCash{},
		&saledomain.Sale{}, &saledomain.LineItem{}, &expensedomain.Expense{},
	)
}

func seedSale(t *testing.T, gw store.Gateway, key string, mode saledomain.PaymentMode, total, paid string, date period.Date) *saledomain.Sale {
	t.Helper()
	sale := &saledomain.Sale{
		CustomerName:    "Walk-in",
		TotalAmount:     dec(total),
		PaidAmount:      dec(paid),
		RemainingAmount: dec(total).Sub(dec(paid)),
		PaymentMode:     mode,
		PaymentStatus:   saledomain.StatusPaid,
		IdempotencyKey:  key,
		BusinessDate:    date,
		SoldAt:          time.Now().UTC(),
	}
	require.NoError(t, gw.Create(context.Background(), sale))
	return sale
}

func seedExpense(t *testing.T, gw store.Gateway, mode expensedomain.PaymentMode, amount string, date period.Date) {
	t.Helper()
	require.NoError(t, gw.Create(context.Background(), &expensedomain.Expense{
		Title:        "Fodder",
		Category:     expensedomain.Categories[0],
		Amount:       dec(amount),
		PaymentMode:  mode,
		BusinessDate: date,
	}))
}

func TestComputeCashPosition(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	journal := cash.NewJournal(gw)

	_, err := journal.SetStartingCash(ctx, day1, dec("500"), "float")
	require.NoError(t, err)

	cashSale := seedSale(t, gw, "s-1", saledomain.ModeCash, "60", "60", day1)
	seedSale(t, gw, "s-2", saledomain.ModeUPI, "90", "90", day1)
	seedSale(t, gw, "s-3", saledomain.ModeCash, "40", "40", day2)
	_, err = journal.RecordSale(ctx, cashSale.ID, dec("60"), day1)
	require.NoError(t, err)

	seedExpense(t, gw, expensedomain.ModeCash, "20", day1)
	seedExpense(t, gw, expensedomain.ModeUPI, "300", day1)

	_, err = journal.AddManual(ctx, cash.ManualEntry{Type: domain.EntryCredit, Amount: dec("15"), Category: "owner", BusinessDate: day1})
	require.NoError(t, err)
	_, err = journal.AddManual(ctx, cash.ManualEntry{Type: domain.EntryDebit, Amount: dec("5"), Category: "tea", BusinessDate: day1})
	require.NoError(t, err)
	_, err = journal.RecordPayment(ctx, 1, "Asha", dec("100"), day1)
	require.NoError(t, err)

	pos, err := cash.NewCalculator(gw).ComputeCashPosition(ctx, period.Day(day1))
	require.NoError(t, err)

	assertDec(t, "500", pos.StartingCash)
	assertDec(t, "60", pos.TotalSales)
	assertDec(t, "20", pos.TotalExpenses)
	assertDec(t, "115", pos.TotalCredits)
	assertDec(t, "5", pos.TotalDebits)
	assertDec(t, "650", pos.EndingCash)
}

func TestComputeCashPositionWithoutStartingCash(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	seedSale(t, gw, "s-1", saledomain.ModeCash, "40", "25", day2)

	pos, err := cash.NewCalculator(gw).ComputeCashPosition(ctx, period.Day(day2))
	require.NoError(t, err)
	assertDec(t, "0", pos.StartingCash)
	assertDec(t, "25", pos.EndingCash)

	_, err = cash.NewCalculator(gw).ComputeCashPosition(ctx, period.Range{Start: day2, End: day1})
	assert.True(t, apperr.IsValidation(err))
}

func TestSetStartingCashUpserts(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	journal := cash.NewJournal(gw)

	first, err := journal.SetStartingCash(ctx, day1, dec("200"), "")
	require.NoError(t, err)
	second, err := journal.SetStartingCash(ctx, day1, dec("250.555"), "recount")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assertDec(t, "250.56", second.Amount)

	n, err := gw.Count(ctx, &domain.StartingCash{}, store.Q())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = journal.SetStartingCash(ctx, day1, dec("-1"), "")
	assert.True(t, apperr.IsValidation(err))
}

func TestOnlyManualEntriesAreEditable(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	journal := cash.NewJournal(gw)

	mirror, err := journal.RecordSale(ctx, 9, dec("30"), day1)
	require.NoError(t, err)

	edit := cash.ManualEntry{Type: domain.EntryDebit, Amount: dec("1"), Category: "misc", BusinessDate: day1}
	_, err = journal.UpdateManual(ctx, mirror.ID, edit)
	assert.ErrorIs(t, err, cash.ErrImmutableEntry)
	assert.ErrorIs(t, journal.DeleteManual(ctx, mirror.ID), cash.ErrImmutableEntry)

	manual, err := journal.AddManual(ctx, cash.ManualEntry{Type: domain.EntryCredit, Amount: dec("10"), Category: "misc", BusinessDate: day1})
	require.NoError(t, err)

	updated, err := journal.UpdateManual(ctx, manual.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryDebit, updated.Type)
	require.NoError(t, journal.DeleteManual(ctx, manual.ID))

	_, err = journal.UpdateManual(ctx, manual.ID, edit)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestManualEntryValidation(t *testing.T) {
	journal := cash.NewJournal(newGateway(t))
	cases := []cash.ManualEntry{
		{Type: "refund", Amount: dec("1"), Category: "x", BusinessDate: day1},
		{Type: domain.EntryCredit, Amount: decimal.Zero, Category: "x", BusinessDate: day1},
		{Type: domain.EntryCredit, Amount: dec("1"), Category: " ", BusinessDate: day1},
		{Type: domain.EntryCredit, Amount: dec("1"), Category: "x", BusinessDate: "yesterday"},
	}
	for _, c := range cases {
		_, err := journal.AddManual(context.Background(), c)
		assert.True(t, apperr.IsValidation(err), "%+v", c)
	}
}

package ledger_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerdomain "github.com/tair/dairy-ledger/internal/customer/domain"
	customerrepo "github.com/tair/dairy-ledger/internal/customer/repository"
	"github.com/tair/dairy-ledger/internal/ledger"
	"github.com/tair/dairy-ledger/internal/ledger/domain"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	salerepo "github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

const today = period.Date("2026-10-18")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

type fixture struct {
	gw       store.Gateway
	customer *customerdomain.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gw := storetest.NewGateway(t,
		&customerdomain.Customer{}, &saledomain.Sale{}, &saledomain.LineItem{},
		&domain.Payment{}, &domain.PaymentAllocation{},
	)
	customer := &customerdomain.Customer{Name: "Lakshmi", TotalDue: decimal.Zero, IsActive: true}
	require.NoError(t, gw.Create(context.Background(), customer))
	return &fixture{gw: gw, customer: customer}
}

// charge records a credit sale through the engine the way checkout does
func (f *fixture) charge(t *testing.T, key, total, paid string, soldAt time.Time) *saledomain.Sale {
	t.Helper()
	ctx := context.Background()

	effect, err := ledger.NewEngine(f.gw).ApplySale(ctx, &f.customer.ID, dec(total), dec(paid), today)
	require.NoError(t, err)

	sale := &saledomain.Sale{
		CustomerID:      &f.customer.ID,
		CustomerName:    f.customer.Name,
		TotalAmount:     dec(total),
		PaidAmount:      dec(paid),
		RemainingAmount: effect.RemainingAmount,
		PaymentMode:     saledomain.ModePending,
		PaymentStatus:   effect.PaymentStatus,
		IdempotencyKey:  key,
		BusinessDate:    today,
		SoldAt:          soldAt,
	}
	require.NoError(t, salerepo.NewSaleRepository(f.gw).Create(ctx, sale))
	return sale
}

func (f *fixture) due(t *testing.T) decimal.Decimal {
	t.Helper()
	c, err := customerrepo.NewCustomerRepository(f.gw).FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	return c.TotalDue
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, saledomain.StatusPartial, ledger.ClassifyStatus(dec("0.01")))
	assert.Equal(t, saledomain.StatusPaid, ledger.ClassifyStatus(decimal.Zero))
	assert.Equal(t, saledomain.StatusOverpaid, ledger.ClassifyStatus(dec("-5")))
}

func TestApplySale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	engine := ledger.NewEngine(f.gw)

	effect, err := engine.ApplySale(ctx, &f.customer.ID, dec("130"), dec("50"), today)
	require.NoError(t, err)
	assertDec(t, "80", effect.RemainingAmount)
	assert.Equal(t, saledomain.StatusPartial, effect.PaymentStatus)
	require.NotNil(t, effect.NewTotalDue)
	assertDec(t, "80", *effect.NewTotalDue)

	walkIn, err := engine.ApplySale(ctx, nil, dec("60"), dec("60"), today)
	require.NoError(t, err)
	assert.Equal(t, saledomain.StatusPaid, walkIn.PaymentStatus)
	assert.Nil(t, walkIn.NewTotalDue)

	missing := uint(404)
	_, err = engine.ApplySale(ctx, &missing, dec("10"), decimal.Zero, today)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestApplyPaymentSettlesOldestFirstAndKeepsCredit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	newer := f.charge(t, "s-500", "500", "0", base.Add(time.Hour))
	older := f.charge(t, "s-300", "300", "0", base)
	assertDec(t, "800", f.due(t))

	result, err := ledger.NewEngine(f.gw).ApplyPayment(ctx, ledger.PaymentRequest{
		CustomerID:     f.customer.ID,
		Amount:         dec("1000"),
		Method:         domain.MethodCash,
		BusinessDate:   today,
		IdempotencyKey: "pay-1",
	})
	require.NoError(t, err)
	assert.False(t, result.Replayed)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, older.ID, result.Allocations[0].SaleID)
	assertDec(t, "300", result.Allocations[0].Amount)
	assert.Equal(t, newer.ID, result.Allocations[1].SaleID)
	assertDec(t, "500", result.Allocations[1].Amount)

	assertDec(t, "200", result.Payment.UnappliedAmount)
	assertDec(t, "-200", result.NewTotalDue)
	assertDec(t, "-200", f.due(t))

	sales := salerepo.NewSaleRepository(f.gw)
	for _, id := range []uint{older.ID, newer.ID} {
		s, err := sales.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, saledomain.StatusPaid, s.PaymentStatus)
		assertDec(t, "0", s.RemainingAmount)
	}

	computed, err := ledger.NewEngine(f.gw).RecomputeDue(ctx, f.customer.ID)
	require.NoError(t, err)
	assertDec(t, "-200", computed)
}

func TestApplyPaymentPartiallySettles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	first := f.charge(t, "s-1", "100", "20", base)
	second := f.charge(t, "s-2", "70", "0", base.Add(time.Minute))

	result, err := ledger.NewEngine(f.gw).ApplyPayment(ctx, ledger.PaymentRequest{
		CustomerID:     f.customer.ID,
		Amount:         dec("100"),
		Method:         domain.MethodUPI,
		BusinessDate:   today,
		IdempotencyKey: "pay-2",
	})
	require.NoError(t, err)
	assertDec(t, "0", result.Payment.UnappliedAmount)
	assertDec(t, "50", result.NewTotalDue)

	sales := salerepo.NewSaleRepository(f.gw)
	s1, err := sales.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, saledomain.StatusPaid, s1.PaymentStatus)

	s2, err := sales.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, saledomain.StatusPartial, s2.PaymentStatus)
	assertDec(t, "50", s2.RemainingAmount)
	assertDec(t, "20", s2.PaidAmount)
}

func TestApplyPaymentReplaysIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.charge(t, "s-1", "300", "0", time.Now().UTC())

	req := ledger.PaymentRequest{
		CustomerID:     f.customer.ID,
		Amount:         dec("120"),
		Method:         domain.MethodCash,
		BusinessDate:   today,
		IdempotencyKey: "retry-me",
	}
	first, err := ledger.NewEngine(f.gw).ApplyPayment(ctx, req)
	require.NoError(t, err)

	again, err := ledger.NewEngine(f.gw).ApplyPayment(ctx, req)
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, first.Payment.ID, again.Payment.ID)
	assert.Len(t, again.Allocations, 1)
	assertDec(t, "180", f.due(t))

	n, err := f.gw.Count(ctx, &domain.Payment{}, store.Q())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestApplyPaymentValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	engine := ledger.NewEngine(f.gw)

	valid := ledger.PaymentRequest{
		CustomerID:     f.customer.ID,
		Amount:         dec("10"),
		Method:         domain.MethodCash,
		BusinessDate:   today,
		IdempotencyKey: "k",
	}

	cases := map[string]func(r *ledger.PaymentRequest){
		"zero amount":     func(r *ledger.PaymentRequest) { r.Amount = decimal.Zero },
		"negative amount": func(r *ledger.PaymentRequest) { r.Amount = dec("-1") },
		"below one paisa": func(r *ledger.PaymentRequest) { r.Amount = dec("0.004") },
		"bad method":      func(r *ledger.PaymentRequest) { r.Method = "barter" },
		"missing key":     func(r *ledger.PaymentRequest) { r.IdempotencyKey = "" },
		"long key": func(r *ledger.PaymentRequest) {
			r.IdempotencyKey = strings.Repeat("k", domain.MaxIdempotencyKeyLen+1)
		},
		"bad date": func(r *ledger.PaymentRequest) { r.BusinessDate = "18/10/2026" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid
			mutate(&req)
			_, err := engine.ApplyPayment(ctx, req)
			assert.True(t, apperr.IsValidation(err))
		})
	}

	n, err := f.gw.Count(ctx, &domain.Payment{}, store.Q())
	require.NoError(t, err)
	assert.Zero(t, n)

	req := valid
	req.CustomerID = 999
	_, err = engine.ApplyPayment(ctx, req)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assertDec(t, "0", f.due(t))
}

func TestApplyPaymentRoundsAmountToPaise(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.charge(t, "s-1", "100", "0", time.Now().UTC())

	result, err := ledger.NewEngine(f.gw).ApplyPayment(ctx, ledger.PaymentRequest{
		CustomerID:     f.customer.ID,
		Amount:         dec("10.005"),
		Method:         domain.MethodCash,
		BusinessDate:   today,
		IdempotencyKey: "round",
	})
	require.NoError(t, err)
	assertDec(t, "10.01", result.Payment.Amount)
	assertDec(t, "89.99", f.due(t))
}

func TestRecomputeDueRepairsDrift(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.charge(t, "s-1", "90", "10", time.Now().UTC())

	repo := customerrepo.NewCustomerRepository(f.gw)
	c, err := repo.FindByID(ctx, f.customer.ID)
	require.NoError(t, err)
	c.TotalDue = dec("1")
	require.NoError(t, repo.SaveBalance(ctx, c))

	engine := ledger.NewEngine(f.gw)
	computed, err := engine.ComputeDue(ctx, f.customer.ID)
	require.NoError(t, err)
	assertDec(t, "80", computed)
	assertDec(t, "1", f.due(t))

	due, err := engine.RecomputeDue(ctx, f.customer.ID)
	require.NoError(t, err)
	assertDec(t, "80", due)
	assertDec(t, "80", f.due(t))
}

// Package cash derives the shop's cash position and keeps the cash
// journal. The calculator only reads.
package cash

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/internal/cash/repository"
	expensedomain "github.com/tair/dairy-ledger/internal/expense/domain"
	expenserepo "github.com/tair/dairy-ledger/internal/expense/repository"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	salerepo "github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

type Calculator struct {
	cash     domain.CashRepository
	sales    saledomain.SaleRepository
	expenses expensedomain.ExpenseRepository
}

func NewCalculator(gw store.Gateway) *Calculator {
	return &Calculator{
		cash:     repository.NewCashRepository(gw),
		sales:    salerepo.NewSaleRepository(gw),
		expenses: expenserepo.NewExpenseRepository(gw),
	}
}

// ComputeCashPosition reports the cash position over the half-open range:
//
//	ending = starting + cash sales + credits - cash expenses - debits
//
// Journal entries mirroring checkout cash are left out of credits because
// cash sales already count them.
func (c *Calculator) ComputeCashPosition(ctx context.Context, rng period.Range) (*domain.CashPosition, error) {
	if rng.Start == "" || rng.End <= rng.Start {
		return nil, apperr.Invalid("invalid date range %s..%s", rng.Start, rng.End)
	}

	pos := &domain.CashPosition{
		Range:         rng,
		StartingCash:  decimal.Zero,
		TotalSales:    decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalCredits:  decimal.Zero,
		TotalDebits:   decimal.Zero,
	}

	start, err := c.cash.FindStartingCash(ctx, rng.Start)
	switch {
	case err == nil:
		pos.StartingCash = start.Amount
	case !store.IsNotFound(err):
		return nil, fmt.Errorf("load starting cash: %w", err)
	}

	sales, err := c.sales.List(ctx, saledomain.ListFilter{Range: &rng, Mode: saledomain.ModeCash})
	if err != nil {
		return nil, fmt.Errorf("load cash sales: %w", err)
	}
	for _, s := range sales {
		pos.TotalSales = pos.TotalSales.Add(s.PaidAmount)
	}

	expenses, err := c.expenses.List(ctx, expensedomain.ListFilter{Range: &rng, PaymentMode: expensedomain.ModeCash})
	if err != nil {
		return nil, fmt.Errorf("load cash expenses: %w", err)
	}
	for _, e := range expenses {
		pos.TotalExpenses = pos.TotalExpenses.Add(e.Amount)
	}

	entries, err := c.cash.ListEntries(ctx, domain.EntryFilter{Range: rng})
	if err != nil {
		return nil, fmt.Errorf("load cash entries: %w", err)
	}
	for _, e := range entries {
		if e.Source == domain.SourceSale {
			continue
		}
		switch e.Type {
		case domain.EntryCredit:
			pos.TotalCredits = pos.TotalCredits.Add(e.Amount)
		case domain.EntryDebit:
			pos.TotalDebits = pos.TotalDebits.Add(e.Amount)
		}
	}

	pos.EndingCash = pos.StartingCash.
		Add(pos.TotalSales).
		Add(pos.TotalCredits).
		Sub(pos.TotalExpenses).
		Sub(pos.TotalDebits)
	return pos, nil
}

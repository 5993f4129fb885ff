package cash

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/internal/cash/repository"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ErrImmutableEntry is returned when a journal entry written by a sale or a
// payment is edited or deleted.
var ErrImmutableEntry = errors.New("only manual cash entries can be changed")

// ManualEntry is an operator-entered cash movement
type ManualEntry struct {
	Type         domain.EntryType
	Amount       decimal.Decimal
	Category     string
	Description  string
	BusinessDate period.Date
}

func (m ManualEntry) validate() error {
	if !m.Type.Valid() {
		return apperr.Invalid("type must be credit or debit")
	}
	if !money.Round(m.Amount).IsPositive() {
		return apperr.Invalid("amount must be greater than zero")
	}
	if strings.TrimSpace(m.Category) == "" {
		return apperr.Invalid("category is required")
	}
	if _, err := period.ParseDate(string(m.BusinessDate)); err != nil {
		return apperr.Invalid("%v", err)
	}
	return nil
}

// Journal writes cash entries and starting cash
type Journal struct {
	repo domain.CashRepository
}

func NewJournal(gw store.Gateway) *Journal {
	return &Journal{repo: repository.NewCashRepository(gw)}
}

// RecordSale mirrors cash taken at checkout
func (j *Journal) RecordSale(ctx context.Context, saleID uint, amount decimal.Decimal, date period.Date) (*domain.CashEntry, error) {
	entry := &domain.CashEntry{
		Type:         domain.EntryCredit,
		Amount:       money.Round(amount),
		Category:     domain.CategorySales,
		Description:  fmt.Sprintf("Sale #%d", saleID),
		Source:       domain.SourceSale,
		SaleID:       &saleID,
		BusinessDate: date,
	}
	if err := j.repo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("record sale cash: %w", err)
	}
	return entry, nil
}

// RecordPayment books cash received from a customer against their balance
func (j *Journal) RecordPayment(ctx context.Context, paymentID uint, customerName string, amount decimal.Decimal, date period.Date) (*domain.CashEntry, error) {
	entry := &domain.CashEntry{
		Type:         domain.EntryCredit,
		Amount:       money.Round(amount),
		Category:     domain.CategoryCustomerPayment,
		Description:  "Payment from " + customerName,
		Source:       domain.SourcePayment,
		PaymentID:    &paymentID,
		BusinessDate: date,
	}
	if err := j.repo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("record payment cash: %w", err)
	}
	return entry, nil
}

func (j *Journal) AddManual(ctx context.Context, m ManualEntry) (*domain.CashEntry, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	entry := &domain.CashEntry{
		Type:         m.Type,
		Amount:       money.Round(m.Amount),
		Category:     strings.TrimSpace(m.Category),
		Description:  m.Description,
		Source:       domain.SourceManual,
		BusinessDate: m.BusinessDate,
	}
	if err := j.repo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("create cash entry: %w", err)
	}
	return entry, nil
}

func (j *Journal) UpdateManual(ctx context.Context, id uint, m ManualEntry) (*domain.CashEntry, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	entry, err := j.manual(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Type = m.Type
	entry.Amount = money.Round(m.Amount)
	entry.Category = strings.TrimSpace(m.Category)
	entry.Description = m.Description
	entry.BusinessDate = m.BusinessDate
	if err := j.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("update cash entry: %w", err)
	}
	return entry, nil
}

func (j *Journal) DeleteManual(ctx context.Context, id uint) error {
	if _, err := j.manual(ctx, id); err != nil {
		return err
	}
	if err := j.repo.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("delete cash entry: %w", err)
	}
	return nil
}

func (j *Journal) manual(ctx context.Context, id uint) (*domain.CashEntry, error) {
	entry, err := j.repo.FindEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cash entry %d: %w", id, err)
	}
	if entry.Source != domain.SourceManual {
		return nil, fmt.Errorf("%w: entry %d comes from a %s", ErrImmutableEntry, id, entry.Source)
	}
	return entry, nil
}

// SetStartingCash records the opening cash for date, replacing any earlier
// value for the same day.
func (j *Journal) SetStartingCash(ctx context.Context, date period.Date, amount decimal.Decimal, note string) (*domain.StartingCash, error) {
	if _, err := period.ParseDate(string(date)); err != nil {
		return nil, apperr.Invalid("%v", err)
	}
	if amount.IsNegative() {
		return nil, apperr.Invalid("starting cash cannot be negative")
	}

	record, err := j.repo.FindStartingCash(ctx, date)
	switch {
	case err == nil:
		record.Amount = money.Round(amount)
		record.Note = note
		if err := j.repo.UpdateStartingCash(ctx, record); err != nil {
			return nil, fmt.Errorf("update starting cash: %w", err)
		}
		return record, nil
	case !store.IsNotFound(err):
		return nil, fmt.Errorf("load starting cash: %w", err)
	}

	record = &domain.StartingCash{BusinessDate: date, Amount: money.Round(amount), Note: note}
	if err := j.repo.CreateStartingCash(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: starting cash for %s set concurrently", store.ErrConflict, date)
		}
		return nil, fmt.Errorf("create starting cash: %w", err)
	}
	return record, nil
}

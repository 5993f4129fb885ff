package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/pkg/period"
)

// EntryType is the direction of a cash entry
type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

func (t EntryType) Valid() bool {
	return t == EntryCredit || t == EntryDebit
}

// Source tells who wrote a cash entry. Only manual entries can be edited.
type Source string

const (
	SourceManual  Source = "manual"
	SourceSale    Source = "sale"
	SourcePayment Source = "payment"
)

// CategorySales is the category of journal mirrors of cash taken at checkout
const CategorySales = "sales"

// CategoryCustomerPayment is the category of cash customer payments
const CategoryCustomerPayment = "customer_payment"

// CashEntry is a line in the cash journal
type CashEntry struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Type         EntryType       `json:"type" gorm:"type:varchar(8);not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Category     string          `json:"category" gorm:"type:varchar(32);not null"`
	Description  string          `json:"description"`
	Source       Source          `json:"source" gorm:"type:varchar(16);not null;default:manual;index"`
	SaleID       *uint           `json:"sale_id,omitempty" gorm:"index"`
	PaymentID    *uint           `json:"payment_id,omitempty" gorm:"index"`
	BusinessDate period.Date     `json:"business_date" gorm:"type:varchar(10);not null;index"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (CashEntry) TableName() string {
	return "cash_entries"
}

// StartingCash is the cash in the drawer when a business day opens
type StartingCash struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	BusinessDate period.Date     `json:"business_date" gorm:"type:varchar(10);not null;uniqueIndex"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (StartingCash) TableName() string {
	return "starting_cash"
}

// CashPosition is the derived cash state over a date range
type CashPosition struct {
	Range         period.Range    `json:"range"`
	StartingCash  decimal.Decimal `json:"starting_cash"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalCredits  decimal.Decimal `json:"total_credits"`
	TotalDebits   decimal.Decimal `json:"total_debits"`
	EndingCash    decimal.Decimal `json:"ending_cash"`
}

// EntryFilter narrows the cash journal
type EntryFilter struct {
	Range  period.Range
	Source Source
}

// CashRepository defines the contract for cash journal data access
type CashRepository interface {
	CreateEntry(ctx context.Context, entry *CashEntry) error
	FindEntry(ctx context.Context, id uint) (*CashEntry, error)
	UpdateEntry(ctx context.Context, entry *CashEntry) error
	DeleteEntry(ctx context.Context, id uint) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]CashEntry, error)

	FindStartingCash(ctx context.Context, date period.Date) (*StartingCash, error)
	CreateStartingCash(ctx context.Context, record *StartingCash) error
	UpdateStartingCash(ctx context.Context, record *StartingCash) error
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/pkg/period"
)

// Category groups expenses for reporting
type Category string

const (
	CategorySupplies    Category = "supplies"
	CategoryBills       Category = "bills"
	CategorySalary      Category = "salary"
	CategoryTransport   Category = "transport"
	CategoryMaintenance Category = "maintenance"
	CategoryMarketing   Category = "marketing"
	CategoryOther       Category = "other"
)

// Categories lists every accepted category
var Categories = []Category{
	CategorySupplies, CategoryBills, CategorySalary, CategoryTransport,
	CategoryMaintenance, CategoryMarketing, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PaymentMode is how an expense was paid. Only cash expenses reduce the
// cash position.
type PaymentMode string

const (
	ModeCash   PaymentMode = "cash"
	ModeCard   PaymentMode = "card"
	ModeUPI    PaymentMode = "upi"
	ModeBank   PaymentMode = "bank"
	ModeCheque PaymentMode = "cheque"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeCard, ModeUPI, ModeBank, ModeCheque:
		return true
	}
	return false
}

// Expense represents money spent running the shop
type Expense struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Title        string          `json:"title" gorm:"not null"`
	Category     Category        `json:"category" gorm:"type:varchar(16);not null;index"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	PaymentMode  PaymentMode     `json:"payment_mode" gorm:"type:varchar(16);not null"`
	BusinessDate period.Date     `json:"business_date" gorm:"type:varchar(10);not null;index"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Expense) TableName() string {
	return "expenses"
}

// ListFilter narrows expense listings
type ListFilter struct {
	Range       *period.Range
	Category    Category
	PaymentMode PaymentMode
	Limit       int
	Offset      int
}

// ExpenseRepository defines the contract for expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	FindByID(ctx context.Context, id uint) (*Expense, error)
	List(ctx context.Context, filter ListFilter) ([]Expense, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uint) error
}

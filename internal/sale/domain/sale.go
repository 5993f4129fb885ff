package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/pkg/period"
)

// PaymentMode is how a sale was paid for
type PaymentMode string

const (
	ModeCash    PaymentMode = "cash"
	ModeUPI     PaymentMode = "upi"
	ModePending PaymentMode = "pending"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeUPI, ModePending:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a sale, derived from the sign
// of its remaining amount.
type PaymentStatus string

const (
	StatusPaid     PaymentStatus = "paid"
	StatusPartial  PaymentStatus = "partial"
	StatusOverpaid PaymentStatus = "overpaid"
	// StatusPending is accepted as a list filter for sales with money
	// outstanding. It is never stored.
	StatusPending PaymentStatus = "pending"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPartial, StatusOverpaid, StatusPending:
		return true
	}
	return false
}

// MaxIdempotencyKeyLen matches the idempotency_key column width
const MaxIdempotencyKeyLen = 64

// Sale is one checkout. Amounts other than Paid/Remaining/Status are
// immutable once written; those three change only through payment
// allocation.
type Sale struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CustomerID      *uint           `json:"customer_id,omitempty" gorm:"index"`
	CustomerName    string          `json:"customer_name"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	PaidAmount      decimal.Decimal `json:"paid_amount" gorm:"type:decimal(12,2);not null"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" gorm:"type:decimal(12,2);not null"`
	PaymentMode     PaymentMode     `json:"payment_mode" gorm:"type:varchar(16);not null;index"`
	PaymentStatus   PaymentStatus   `json:"payment_status" gorm:"type:varchar(16);not null;index"`
	IdempotencyKey  string          `json:"idempotency_key" gorm:"type:varchar(64);not null;uniqueIndex"`
	BusinessDate    period.Date     `json:"business_date" gorm:"type:varchar(10);not null;index"`
	SoldAt          time.Time       `json:"sold_at" gorm:"not null;index"`
	Version         int64           `json:"version" gorm:"not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Items []LineItem `json:"items,omitempty" gorm:"-"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// LineItem is one product line of a sale with its price snapshot
type LineItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	SaleID       uint            `json:"sale_id" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null;index"`
	ProductName  string          `json:"product_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" gorm:"type:decimal(12,2);not null"`
	TotalPrice   decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (LineItem) TableName() string {
	return "sale_items"
}

// ListFilter narrows sale listings. Zero values mean no filter.
type ListFilter struct {
	Range      *period.Range
	CustomerID *uint
	Mode       PaymentMode
	Status     PaymentStatus
	Limit      int
	Offset     int
}

// SaleRepository defines the contract for sale data access
type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	CreateItem(ctx context.Context, item *LineItem) error
	// FindByID loads the sale with its items
	FindByID(ctx context.Context, id uint) (*Sale, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Sale, error)
	// FindOpenByCustomer returns the customer's sales with money
	// outstanding, oldest first.
	FindOpenByCustomer(ctx context.Context, customerID uint) ([]Sale, error)
	// SaveSettlement writes paid/remaining/status conditioned on
	// sale.Version, bumping it on success.
	SaveSettlement(ctx context.Context, sale *Sale) error
	List(ctx context.Context, filter ListFilter) ([]Sale, error)
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
}

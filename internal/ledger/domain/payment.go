package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/pkg/period"
)

// Method is how a customer paid off their balance
type Method string

const (
	MethodCash Method = "cash"
	MethodUPI  Method = "upi"
	MethodCard Method = "card"
	MethodBank Method = "bank"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodUPI, MethodCard, MethodBank:
		return true
	}
	return false
}

// MaxIdempotencyKeyLen matches the idempotency_key column width
const MaxIdempotencyKeyLen = 64

// Payment is money received from a customer against their balance.
// UnappliedAmount is the part no open sale absorbed; it is the customer's
// credit.
type Payment struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CustomerID      uint            `json:"customer_id" gorm:"not null;index"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	UnappliedAmount decimal.Decimal `json:"unapplied_amount" gorm:"type:decimal(12,2);not null"`
	Method          Method          `json:"method" gorm:"type:varchar(16);not null"`
	IdempotencyKey  string          `json:"idempotency_key" gorm:"type:varchar(64);not null;uniqueIndex"`
	BusinessDate    period.Date     `json:"business_date" gorm:"type:varchar(10);not null;index"`
	PaidAt          time.Time       `json:"paid_at" gorm:"not null"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`

	Allocations []PaymentAllocation `json:"allocations,omitempty" gorm:"-"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// PaymentAllocation records how much of a payment settled one sale
type PaymentAllocation struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	PaymentID uint            `json:"payment_id" gorm:"not null;index"`
	SaleID    uint            `json:"sale_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (PaymentAllocation) TableName() string {
	return "payment_allocations"
}

// PaymentRepository defines the contract for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	CreateAllocation(ctx context.Context, allocation *PaymentAllocation) error
	// FindByIdempotencyKey loads the payment with its allocations
	FindByIdempotencyKey(ctx context.Context, key string) (*Payment, error)
	FindByID(ctx context.Context, id uint) (*Payment, error)
	// ListByCustomer returns the customer's payments, newest first, with
	// allocations
	ListByCustomer(ctx context.Context, customerID uint) ([]Payment, error)
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
}

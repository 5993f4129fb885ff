package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/pkg/period"
)

// DueStatus describes which way a customer's balance leans
type DueStatus string

const (
	DuePayment DueStatus = "Payment Due"
	DueCredit  DueStatus = "Credit/Pre-pay"
	DueNone    DueStatus = "No Dues"
)

// Customer represents a credit customer of the shop.
//
// TotalDue is a cached projection of the customer's ledger: the sum of the
// remaining amounts of their sales minus the unapplied part of their
// payments. Negative means the shop owes the customer. Only the ledger
// engine writes it.
type Customer struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"not null;index"`
	Phone           string          `json:"phone" gorm:"index"`
	Address         string          `json:"address"`
	TotalDue        decimal.Decimal `json:"total_due" gorm:"type:decimal(12,2);not null;default:0"`
	LastSaleDate    period.Date     `json:"last_sale_date,omitempty" gorm:"type:varchar(10)"`
	LastPaymentDate period.Date     `json:"last_payment_date,omitempty" gorm:"type:varchar(10)"`
	IsActive        bool            `json:"is_active" gorm:"not null;default:true"`
	Version         int64           `json:"version" gorm:"not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}

// DueStatus classifies the cached balance
func (c *Customer) DueStatus() DueStatus {
	switch c.TotalDue.Sign() {
	case 1:
		return DuePayment
	case -1:
		return DueCredit
	default:
		return DueNone
	}
}

// CustomerView is a customer with its derived due status
type CustomerView struct {
	Customer
	DueStatus DueStatus `json:"due_status"`
}

func (c Customer) View() CustomerView {
	return CustomerView{Customer: c, DueStatus: c.DueStatus()}
}

// ListFilter narrows customer listings
type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CustomerRepository defines the contract for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Customer, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	UpdateContact(ctx context.Context, customer *Customer) error
	// SaveBalance writes TotalDue and the last sale/payment dates
	// conditioned on customer.Version, bumping it on success.
	SaveBalance(ctx context.Context, customer *Customer) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

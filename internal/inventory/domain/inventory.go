package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/pkg/money"
	"github.com/tair/dairy-ledger/pkg/period"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementAdd    MovementType = "add"
	MovementRemove MovementType = "remove"
)

// MovementReason explains why stock moved
type MovementReason string

const (
	ReasonRestock    MovementReason = "restock"
	ReasonSale       MovementReason = "sale"
	ReasonWaste      MovementReason = "waste"
	ReasonAdjustment MovementReason = "adjustment"
)

// WalkIn is recorded as the customer of sales without a customer
const WalkIn = "Walk-in"

// DailyRecord is the per-product, per-business-date stock snapshot
type DailyRecord struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	ProductID         uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_daily_product_date"`
	BusinessDate      period.Date     `json:"business_date" gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_product_date;index"`
	PreviousRemaining decimal.Decimal `json:"previous_remaining" gorm:"type:decimal(12,3);not null;default:0"`
	NewAdded          decimal.Decimal `json:"new_added" gorm:"type:decimal(12,3);not null;default:0"`
	TotalAvailable    decimal.Decimal `json:"total_available" gorm:"type:decimal(12,3);not null;default:0"`
	Sold              decimal.Decimal `json:"sold" gorm:"type:decimal(12,3);not null;default:0"`
	Waste             decimal.Decimal `json:"waste" gorm:"type:decimal(12,3);not null;default:0"`
	RemainingQty      decimal.Decimal `json:"remaining_qty" gorm:"type:decimal(12,3);not null;default:0"`
	Version           int64           `json:"version" gorm:"not null;default:0"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (DailyRecord) TableName() string {
	return "daily_inventory"
}

// Recompute derives TotalAvailable and RemainingQty from the counters.
// RemainingQty never goes below zero.
func (r *DailyRecord) Recompute() {
	r.TotalAvailable = r.PreviousRemaining.Add(r.NewAdded)
	r.RemainingQty = money.ClampZero(r.TotalAvailable.Sub(r.Sold).Sub(r.Waste))
}

// StockMovement is an append-only log line of a stock change. OldQuantity
// and NewQuantity are the product counter around the change.
type StockMovement struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	ProductID    uint            `json:"product_id" gorm:"not null;index"`
	ProductName  string          `json:"product_name"`
	Type         MovementType    `json:"type" gorm:"type:varchar(8);not null"`
	Reason       MovementReason  `json:"reason" gorm:"type:varchar(16);not null"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
	OldQuantity  decimal.Decimal `json:"old_quantity" gorm:"type:decimal(12,3);not null"`
	NewQuantity  decimal.Decimal `json:"new_quantity" gorm:"type:decimal(12,3);not null"`
	BusinessDate period.Date     `json:"business_date" gorm:"type:varchar(10);not null;index"`
	SaleID       *uint           `json:"sale_id,omitempty" gorm:"index"`
	CustomerName string          `json:"customer_name,omitempty"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// DailySummary is the read-only view of one product's day
type DailySummary struct {
	ProductID    uint            `json:"product_id"`
	BusinessDate period.Date     `json:"business_date"`
	TodayAdded   decimal.Decimal `json:"today_added"`
	TodaySold    decimal.Decimal `json:"today_sold"`
	Waste        decimal.Decimal `json:"waste"`
	Available    decimal.Decimal `json:"available"`
}

// MovementFilter narrows the movement history
type MovementFilter struct {
	ProductID *uint
	Range     *period.Range
	Limit     int
	Offset    int
}

// InventoryRepository defines the contract for daily records and movements
type InventoryRepository interface {
	FindRecord(ctx context.Context, productID uint, date period.Date) (*DailyRecord, error)
	// FindLatestBefore returns the most recent record strictly before date
	FindLatestBefore(ctx context.Context, productID uint, date period.Date) (*DailyRecord, error)
	CreateRecord(ctx context.Context, record *DailyRecord) error
	// UpdateRecord writes the counters conditioned on record.Version
	UpdateRecord(ctx context.Context, record *DailyRecord) error
	ListRecords(ctx context.Context, date period.Date) ([]DailyRecord, error)

	AppendMovement(ctx context.Context, movement *StockMovement) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, error)
	CountMovements(ctx context.Context, productID uint) (int64, error)
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Unit is the selling unit of a product
type Unit string

const (
	UnitLiter  Unit = "Liter"
	UnitKg     Unit = "Kg"
	UnitPiece  Unit = "Piece"
	UnitPacket Unit = "Packet"
)

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	switch u {
	case UnitLiter, UnitKg, UnitPiece, UnitPacket:
		return true
	}
	return false
}

// StockStatus is the shelf indicator shown next to a product
type StockStatus string

const (
	StockIn  StockStatus = "In Stock"
	StockLow StockStatus = "Low Stock"
	StockOut StockStatus = "Out of Stock"
)

// Product represents a sellable item and its running stock counter
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null;index"`
	Unit         Unit            `json:"unit" gorm:"type:varchar(16);not null"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" gorm:"type:decimal(12,2);not null"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null;default:0"`
	IsActive     bool            `json:"is_active" gorm:"not null;default:true"`
	Version      int64           `json:"version" gorm:"not null;default:0"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// StockStatus classifies the current quantity. Anything above lowThreshold
// is in stock.
func (p *Product) StockStatus(lowThreshold int) StockStatus {
	switch {
	case p.Quantity.GreaterThan(decimal.NewFromInt(int64(lowThreshold))):
		return StockIn
	case p.Quantity.IsPositive():
		return StockLow
	default:
		return StockOut
	}
}

// LowStockThreshold is the quantity at or below which stock counts as low
type LowStockThreshold int

// ProductView is a product with its derived stock status
type ProductView struct {
	Product
	StockStatus StockStatus `json:"stock_status"`
}

// View classifies p against threshold
func (p Product) View(threshold LowStockThreshold) ProductView {
	return ProductView{Product: p, StockStatus: p.StockStatus(int(threshold))}
}

// ListFilter narrows product listings
type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Product, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	UpdateDetails(ctx context.Context, product *Product) error
	// SetQuantity writes a new stock counter conditioned on product.Version
	// and bumps the version on success.
	SetQuantity(ctx context.Context, product *Product, quantity decimal.Decimal) error
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

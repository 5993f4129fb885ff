package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeSaleRecorded   = "sale.recorded"
	EventTypePaymentApplied = "payment.applied"
	EventTypeStockLow       = "stock.low"
)

// Kafka topics
const (
	TopicSaleRecorded   = "sale-recorded"
	TopicPaymentApplied = "payment-applied"
	TopicStockLow       = "stock-low"
)

// Topics lists every topic the service publishes to
var Topics = []string{TopicSaleRecorded, TopicPaymentApplied, TopicStockLow}

// Meta is stamped on every event by the publisher
type Meta struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

func (m *Meta) meta() *Meta { return m }

// Event is a message the publisher knows how to route
type Event interface {
	Topic() string
	Type() string
	Key() string
	meta() *Meta
}

// SaleItem is one line of a recorded sale
type SaleItem struct {
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleRecordedEvent is published after a sale commits
type SaleRecordedEvent struct {
	Meta
	SaleID          uint             `json:"sale_id"`
	CustomerID      *uint            `json:"customer_id,omitempty"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	PaidAmount      decimal.Decimal  `json:"paid_amount"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
	PaymentMode     string           `json:"payment_mode"`
	NewTotalDue     *decimal.Decimal `json:"new_total_due,omitempty"`
	BusinessDate    string           `json:"business_date"`
	Items           []SaleItem       `json:"items"`
}

func (e *SaleRecordedEvent) Topic() string { return TopicSaleRecorded }
func (e *SaleRecordedEvent) Type() string  { return EventTypeSaleRecorded }
func (e *SaleRecordedEvent) Key() string   { return keyOf("sale", e.SaleID) }

// PaymentAppliedEvent is published after a customer payment commits
type PaymentAppliedEvent struct {
	Meta
	PaymentID     uint            `json:"payment_id"`
	CustomerID    uint            `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	NewTotalDue   decimal.Decimal `json:"new_total_due"`
	BusinessDate  string          `json:"business_date"`
}

func (e *PaymentAppliedEvent) Topic() string { return TopicPaymentApplied }
func (e *PaymentAppliedEvent) Type() string  { return EventTypePaymentApplied }
func (e *PaymentAppliedEvent) Key() string   { return keyOf("customer", e.CustomerID) }

// StockLowEvent is published when a sale leaves a product at or below the
// low-stock threshold
type StockLowEvent struct {
	Meta
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Threshold   int             `json:"threshold"`
}

func (e *StockLowEvent) Topic() string { return TopicStockLow }
func (e *StockLowEvent) Type() string  { return EventTypeStockLow }
func (e *StockLowEvent) Key() string   { return keyOf("product", e.ProductID) }

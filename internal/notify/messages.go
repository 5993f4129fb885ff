package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/kafka"
)

// SaleMessage is the receipt texted to a customer after a sale
func SaleMessage(shop string, e kafka.SaleRecordedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n", e.CustomerName)
	for _, item := range e.Items {
		fmt.Fprintf(&b, "You purchased %s %s %s.\n", qty(item.Quantity), item.Unit, item.ProductName)
	}
	fmt.Fprintf(&b, "Total: ₹%s\n", e.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Payment: %s\n", e.PaymentMode)
	if e.RemainingAmount.IsPositive() {
		fmt.Fprintf(&b, "Paid: ₹%s, Balance: ₹%s\n", e.PaidAmount.StringFixed(2), e.RemainingAmount.StringFixed(2))
	}
	if e.NewTotalDue != nil && e.NewTotalDue.IsPositive() {
		fmt.Fprintf(&b, "Total due: ₹%s\n", e.NewTotalDue.StringFixed(2))
	}
	fmt.Fprintf(&b, "- %s", shop)
	return b.String()
}

// PaymentMessage acknowledges a payment against a customer's due
func PaymentMessage(shop string, e kafka.PaymentAppliedEvent) string {
	return fmt.Sprintf("Hello %s,\nWe received ₹%s by %s.\nRemaining due: ₹%s\n- %s",
		e.CustomerName, e.Amount.StringFixed(2), e.Method, e.NewTotalDue.StringFixed(2), shop)
}

// StockLowMessage alerts the owner that a product needs restocking
func StockLowMessage(shop string, e kafka.StockLowEvent) string {
	return fmt.Sprintf("Low stock: %s has %s %s left (threshold %d).\n- %s",
		e.ProductName, qty(e.Quantity), e.Unit, e.Threshold, shop)
}

func qty(d decimal.Decimal) string {
	return d.Round(3).String()
}

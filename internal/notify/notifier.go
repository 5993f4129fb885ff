// Package notify turns ledger events into SMS messages for customers and the
// shop owner.
package notify

import (
	"context"
	"errors"

	"github.com/tair/dairy-ledger/kafka"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/metrics"
)

// Notifier consumes sale, payment and stock events
type Notifier struct {
	sender     Sender
	shopName   string
	ownerPhone string
}

// NewNotifier builds a notifier. Stock alerts are skipped when ownerPhone is
// empty.
func NewNotifier(sender Sender, shopName, ownerPhone string) *Notifier {
	return &Notifier{sender: sender, shopName: shopName, ownerPhone: ownerPhone}
}

// Register binds the notifier's handlers to the consumer
func (n *Notifier) Register(c *kafka.Consumer) {
	kafka.Register(c, kafka.EventTypeSaleRecorded, n.OnSaleRecorded)
	kafka.Register(c, kafka.EventTypePaymentApplied, n.OnPaymentApplied)
	kafka.Register(c, kafka.EventTypeStockLow, n.OnStockLow)
}

// OnSaleRecorded texts the receipt to customers with a phone on file
func (n *Notifier) OnSaleRecorded(ctx context.Context, e kafka.SaleRecordedEvent) error {
	return n.deliver(ctx, kafka.EventTypeSaleRecorded, e.CustomerPhone, SaleMessage(n.shopName, e))
}

// OnPaymentApplied acknowledges a payment to the customer
func (n *Notifier) OnPaymentApplied(ctx context.Context, e kafka.PaymentAppliedEvent) error {
	return n.deliver(ctx, kafka.EventTypePaymentApplied, e.CustomerPhone, PaymentMessage(n.shopName, e))
}

// OnStockLow alerts the owner
func (n *Notifier) OnStockLow(ctx context.Context, e kafka.StockLowEvent) error {
	return n.deliver(ctx, kafka.EventTypeStockLow, n.ownerPhone, StockLowMessage(n.shopName, e))
}

func (n *Notifier) deliver(ctx context.Context, eventType, phone, message string) error {
	err := n.sender.Send(ctx, phone, message)
	switch {
	case errors.Is(err, ErrNoRecipient):
		metrics.NotificationsSent.WithLabelValues(eventType, "skipped").Inc()
		logger.Debug(ctx).Str("event_type", eventType).Msg("No recipient, notification skipped")
		return nil
	case err != nil:
		metrics.NotificationsSent.WithLabelValues(eventType, "failed").Inc()
		logger.Warn(ctx).Err(err).Str("event_type", eventType).Msg("Failed to send notification")
		return err
	}
	metrics.NotificationsSent.WithLabelValues(eventType, "sent").Inc()
	return nil
}

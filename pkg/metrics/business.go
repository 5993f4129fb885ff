// Package metrics holds the business counters of the ledger. HTTP request
// metrics live in httpx.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SalesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_sales_recorded_total",
			Help: "Total number of sales recorded",
		},
		[]string{"payment_mode", "payment_status"},
	)

	SaleAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dairy_sales_amount_total",
			Help: "Total billed amount of recorded sales",
		},
	)

	PaymentsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_payments_applied_total",
			Help: "Total number of customer payments applied",
		},
		[]string{"mode"},
	)

	StockMovements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_stock_movements_total",
			Help: "Total number of stock movements by type and reason",
		},
		[]string{"type", "reason"},
	)

	IdempotentReplays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_idempotent_replays_total",
			Help: "Requests answered from an earlier result with the same idempotency key",
		},
		[]string{"operation"},
	)

	ActiveProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dairy_active_products",
			Help: "Number of active products in the catalogue",
		},
	)

	ConflictRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_store_conflicts_total",
			Help: "Optimistic concurrency conflicts seen by write operations",
		},
		[]string{"operation"},
	)

	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dairy_notifications_total",
			Help: "SMS notifications by event type and outcome",
		},
		[]string{"event_type", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		SalesRecorded,
		SaleAmount,
		PaymentsApplied,
		StockMovements,
		IdempotentReplays,
		ActiveProducts,
		ConflictRetries,
		NotificationsSent,
	)
}

package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash"
	customerrepo "github.com/tair/dairy-ledger/internal/customer/repository"
	"github.com/tair/dairy-ledger/internal/ledger"
	"github.com/tair/dairy-ledger/internal/ledger/domain"
	"github.com/tair/dairy-ledger/kafka"
	"github.com/tair/dairy-ledger/pkg/cache"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
)

// ApplyPaymentCommand records money received from a customer. An empty
// IdempotencyKey gets a fresh one, so only keyed requests are safe to retry.
type ApplyPaymentCommand struct {
	CustomerID     uint
	Amount         decimal.Decimal
	Method         domain.Method
	BusinessDate   period.Date
	IdempotencyKey string
	Note           string
}

// ApplyPaymentHandler applies a payment to the customer's open sales and,
// for cash, books it in the cash journal within the same transaction.
type ApplyPaymentHandler struct {
	runner    *store.Runner
	cache     *cache.Cache
	publisher *kafka.Publisher
	now       func() time.Time
}

// NewApplyPaymentHandler creates a new apply payment handler
func NewApplyPaymentHandler(runner *store.Runner, c *cache.Cache, publisher *kafka.Publisher) *ApplyPaymentHandler {
	return &ApplyPaymentHandler{runner: runner, cache: c, publisher: publisher, now: time.Now}
}

// Handle executes the apply payment command
func (h *ApplyPaymentHandler) Handle(ctx context.Context, cmd ApplyPaymentCommand) (*ledger.PaymentResult, error) {
	if cmd.IdempotencyKey == "" {
		cmd.IdempotencyKey = uuid.NewString()
	}

	var (
		result *ledger.PaymentResult
		event  *kafka.PaymentAppliedEvent
	)
	err := h.runner.Run(ctx, "apply_payment", func(tx store.Gateway) error {
		var err error
		result, err = ledger.NewEngine(tx).ApplyPayment(ctx, ledger.PaymentRequest{
			CustomerID:     cmd.CustomerID,
			Amount:         cmd.Amount,
			Method:         cmd.Method,
			BusinessDate:   cmd.BusinessDate,
			IdempotencyKey: cmd.IdempotencyKey,
			Note:           cmd.Note,
			PaidAt:         h.now().UTC(),
		})
		if err != nil || result.Replayed {
			return err
		}

		customer, err := customerrepo.NewCustomerRepository(tx).FindByID(ctx, cmd.CustomerID)
		if err != nil {
			return fmt.Errorf("load customer %d: %w", cmd.CustomerID, err)
		}

		payment := result.Payment
		if payment.Method == domain.MethodCash {
			if _, err := cash.NewJournal(tx).RecordPayment(ctx, payment.ID, customer.Name, payment.Amount, payment.BusinessDate); err != nil {
				return err
			}
		}

		event = &kafka.PaymentAppliedEvent{
			PaymentID:     payment.ID,
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
			Amount:        payment.Amount,
			Method:        string(payment.Method),
			NewTotalDue:   result.NewTotalDue,
			BusinessDate:  payment.BusinessDate.String(),
		}
		return nil
	})
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent request with the same key committed first.
		replay, findErr := ledger.NewEngine(h.runner.Gateway()).FindPayment(ctx, cmd.IdempotencyKey)
		if findErr == nil && replay != nil {
			return replay, nil
		}
	}
	if err != nil {
		return nil, err
	}
	if result.Replayed {
		return result, nil
	}

	h.cache.Invalidate(ctx, cache.Financial...)
	h.publisher.PublishAll(ctx, event)

	logger.Info(ctx).
		Uint("payment_id", result.Payment.ID).
		Uint("customer_id", cmd.CustomerID).
		Str("amount", result.Payment.Amount.String()).
		Str("unapplied", result.Payment.UnappliedAmount.String()).
		Str("new_total_due", result.NewTotalDue.String()).
		Msg("Payment applied")

	return result, nil
}

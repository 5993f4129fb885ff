package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/ledger/domain"
	"github.com/tair/dairy-ledger/internal/ledger/usecase/command"
	"github.com/tair/dairy-ledger/internal/ledger/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/period"
)

// IdempotencyHeader carries the client's retry key
const IdempotencyHeader = "Idempotency-Key"

// LedgerHandler handles HTTP requests for customer payments and balances
type LedgerHandler struct {
	paymentHandler   *command.ApplyPaymentHandler
	recomputeHandler *command.RecomputeDueHandler
	ledgerHandler    *query.GetCustomerLedgerHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(
	paymentHandler *command.ApplyPaymentHandler,
	recomputeHandler *command.RecomputeDueHandler,
	ledgerHandler *query.GetCustomerLedgerHandler,
	calendar *period.Calendar,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *LedgerHandler {
	return &LedgerHandler{
		paymentHandler:   paymentHandler,
		recomputeHandler: recomputeHandler,
		ledgerHandler:    ledgerHandler,
		calendar:         calendar,
		guard:            guard,
		metrics:          metrics,
	}
}

func (h *LedgerHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageCustomers)

	routes.Handle(http.MethodGet, "/api/customers/{id}/ledger", h.GetLedger)
	routes.Handle(http.MethodPost, "/api/customers/{id}/payments", h.ApplyPayment)
	routes.Handle(http.MethodPost, "/api/customers/{id}/recompute", h.RecomputeDue)
}

// ApplyPayment handles POST /api/customers/{id}/payments
func (h *LedgerHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Amount         decimal.Decimal `json:"amount"`
		Method         domain.Method   `json:"method"`
		BusinessDate   string          `json:"business_date"`
		Note           string          `json:"note"`
		IdempotencyKey string          `json:"idempotency_key"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	date, err := h.calendar.DateOr(req.BusinessDate)
	if err != nil {
		httpx.RespondError(w, r, apperr.Invalid("%v", err))
		return
	}
	key := r.Header.Get(IdempotencyHeader)
	if key == "" {
		key = req.IdempotencyKey
	}

	result, err := h.paymentHandler.Handle(r.Context(), command.ApplyPaymentCommand{
		CustomerID:     id,
		Amount:         req.Amount,
		Method:         req.Method,
		BusinessDate:   date,
		IdempotencyKey: key,
		Note:           req.Note,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if result.Replayed {
		httpx.RespondOK(w, http.StatusOK, "Payment already recorded", result)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Payment applied successfully", result)
}

// GetLedger handles GET /api/customers/{id}/ledger
func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	ledger, err := h.ledgerHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", ledger)
}

// RecomputeDue handles POST /api/customers/{id}/recompute
func (h *LedgerHandler) RecomputeDue(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	due, err := h.recomputeHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Balance recomputed", map[string]interface{}{
		"customer_id": id,
		"total_due":   due,
	})
}

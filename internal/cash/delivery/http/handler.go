package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/cash"
	"github.com/tair/dairy-ledger/internal/cash/domain"
	"github.com/tair/dairy-ledger/internal/cash/usecase/command"
	"github.com/tair/dairy-ledger/internal/cash/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/period"
)

func init() {
	httpx.RegisterStatus(cash.ErrImmutableEntry, http.StatusUnprocessableEntity)
}

// CashHandler handles HTTP requests for cash management
type CashHandler struct {
	createHandler   *command.CreateEntryHandler
	updateHandler   *command.UpdateEntryHandler
	deleteHandler   *command.DeleteEntryHandler
	startingHandler *command.SetStartingCashHandler

	positionHandler *query.GetPositionHandler
	entriesHandler  *query.ListEntriesHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewCashHandler creates a new cash handler
func NewCashHandler(
	createHandler *command.CreateEntryHandler,
	updateHandler *command.UpdateEntryHandler,
	deleteHandler *command.DeleteEntryHandler,
	startingHandler *command.SetStartingCashHandler,
	positionHandler *query.GetPositionHandler,
	entriesHandler *query.ListEntriesHandler,
	calendar *period.Calendar,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *CashHandler {
	return &CashHandler{
		createHandler:   createHandler,
		updateHandler:   updateHandler,
		deleteHandler:   deleteHandler,
		startingHandler: startingHandler,
		positionHandler: positionHandler,
		entriesHandler:  entriesHandler,
		calendar:        calendar,
		guard:           guard,
		metrics:         metrics,
	}
}

func (h *CashHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageCashManagement)

	routes.Handle(http.MethodGet, "/api/cash/position", h.GetPosition)
	routes.Handle(http.MethodGet, "/api/cash/entries", h.ListEntries)
	routes.Handle(http.MethodPost, "/api/cash/entries", h.CreateEntry)
	routes.Handle(http.MethodPut, "/api/cash/entries/{id}", h.UpdateEntry)
	routes.Handle(http.MethodDelete, "/api/cash/entries/{id}", h.DeleteEntry)
	routes.Handle(http.MethodPut, "/api/cash/starting", h.SetStartingCash)
}

type entryRequest struct {
	Type         domain.EntryType `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Category     string           `json:"category"`
	Description  string           `json:"description"`
	BusinessDate string           `json:"business_date"`
}

func (h *CashHandler) decodeEntry(r *http.Request) (cash.ManualEntry, error) {
	var req entryRequest
	if err := httpx.Decode(r, &req); err != nil {
		return cash.ManualEntry{}, err
	}
	date, err := h.calendar.DateOr(req.BusinessDate)
	if err != nil {
		return cash.ManualEntry{}, apperr.Invalid("%v", err)
	}
	return cash.ManualEntry{
		Type:         req.Type,
		Amount:       req.Amount,
		Category:     req.Category,
		Description:  req.Description,
		BusinessDate: date,
	}, nil
}

func (h *CashHandler) resolveRange(r *http.Request) (period.Range, error) {
	rng, err := h.calendar.Resolve(period.Kind(r.URL.Query().Get("range")), r.URL.Query().Get("date"))
	if err != nil {
		return period.Range{}, apperr.Invalid("%v", err)
	}
	return rng, nil
}

// CreateEntry handles POST /api/cash/entries
func (h *CashHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.decodeEntry(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	created, err := h.createHandler.Handle(r.Context(), entry)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).
		Uint("entry_id", created.ID).
		Str("type", string(created.Type)).
		Str("amount", created.Amount.String()).
		Msg("Cash entry created")

	httpx.RespondOK(w, http.StatusCreated, "Cash entry created successfully", created)
}

// UpdateEntry handles PUT /api/cash/entries/{id}
func (h *CashHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	entry, err := h.decodeEntry(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	updated, err := h.updateHandler.Handle(r.Context(), command.UpdateEntryCommand{ID: id, Entry: entry})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Cash entry updated successfully", updated)
}

// DeleteEntry handles DELETE /api/cash/entries/{id}
func (h *CashHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), id); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Cash entry deleted successfully", nil)
}

// SetStartingCash handles PUT /api/cash/starting
func (h *CashHandler) SetStartingCash(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BusinessDate string          `json:"business_date"`
		Amount       decimal.Decimal `json:"amount"`
		Note         string          `json:"note"`
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

	record, err := h.startingHandler.Handle(r.Context(), command.SetStartingCashCommand{
		BusinessDate: date,
		Amount:       req.Amount,
		Note:         req.Note,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Starting cash saved", record)
}

// GetPosition handles GET /api/cash/position
func (h *CashHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	rng, err := h.resolveRange(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	position, err := h.positionHandler.Handle(r.Context(), rng)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", position)
}

// ListEntries handles GET /api/cash/entries
func (h *CashHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	rng, err := h.resolveRange(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	entries, err := h.entriesHandler.Handle(r.Context(), domain.EntryFilter{
		Range:  rng,
		Source: domain.Source(r.URL.Query().Get("source")),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"range":   rng,
		"entries": entries,
	})
}

package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/inventory"
	"github.com/tair/dairy-ledger/internal/inventory/domain"
	"github.com/tair/dairy-ledger/internal/inventory/usecase/command"
	"github.com/tair/dairy-ledger/internal/inventory/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/period"
)

func init() {
	httpx.RegisterStatus(inventory.ErrInsufficientStock, http.StatusUnprocessableEntity)
}

// InventoryHandler handles HTTP requests for stock and daily inventory
type InventoryHandler struct {
	addStockHandler    *command.AddStockHandler
	wasteHandler       *command.RecordWasteHandler
	adjustStockHandler *command.AdjustStockHandler

	summaryHandler   *query.GetDailySummaryHandler
	recordsHandler   *query.ListDailyRecordsHandler
	movementsHandler *query.ListMovementsHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	addStockHandler *command.AddStockHandler,
	wasteHandler *command.RecordWasteHandler,
	adjustStockHandler *command.AdjustStockHandler,
	summaryHandler *query.GetDailySummaryHandler,
	recordsHandler *query.ListDailyRecordsHandler,
	movementsHandler *query.ListMovementsHandler,
	calendar *period.Calendar,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *InventoryHandler {
	return &InventoryHandler{
		addStockHandler:    addStockHandler,
		wasteHandler:       wasteHandler,
		adjustStockHandler: adjustStockHandler,
		summaryHandler:     summaryHandler,
		recordsHandler:     recordsHandler,
		movementsHandler:   movementsHandler,
		calendar:           calendar,
		guard:              guard,
		metrics:            metrics,
	}
}

func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageInventory)

	routes.Handle(http.MethodGet, "/api/inventory/daily", h.ListDailyRecords)
	routes.Handle(http.MethodGet, "/api/inventory/movements", h.ListMovements)
	routes.Handle(http.MethodGet, "/api/inventory/summary/{product_id}", h.GetDailySummary)

	routes.Handle(http.MethodPost, "/api/inventory/stock", h.AddStock)
	routes.Handle(http.MethodPost, "/api/inventory/waste", h.RecordWaste)
	routes.Handle(http.MethodPost, "/api/inventory/adjust", h.AdjustStock)
}

type stockRequest struct {
	ProductID    uint            `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	BusinessDate string          `json:"business_date"`
	Note         string          `json:"note"`
}

func (h *InventoryHandler) decodeStock(r *http.Request) (stockRequest, period.Date, error) {
	var req stockRequest
	if err := httpx.Decode(r, &req); err != nil {
		return req, "", err
	}
	if req.ProductID == 0 {
		return req, "", apperr.Invalid("product_id is required")
	}
	date, err := h.calendar.DateOr(req.BusinessDate)
	if err != nil {
		return req, "", apperr.Invalid("%v", err)
	}
	return req, date, nil
}

// AddStock handles POST /api/inventory/stock
func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	req, date, err := h.decodeStock(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.addStockHandler.Handle(r.Context(), command.AddStockCommand{
		ProductID:    req.ProductID,
		BusinessDate: date,
		Quantity:     req.Quantity,
		Note:         req.Note,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).
		Uint("product_id", req.ProductID).
		Str("quantity", req.Quantity.String()).
		Str("business_date", date.String()).
		Msg("Stock added")

	httpx.RespondOK(w, http.StatusCreated, "Stock added successfully", result)
}

// RecordWaste handles POST /api/inventory/waste
func (h *InventoryHandler) RecordWaste(w http.ResponseWriter, r *http.Request) {
	req, date, err := h.decodeStock(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.wasteHandler.Handle(r.Context(), command.RecordWasteCommand{
		ProductID:    req.ProductID,
		BusinessDate: date,
		Quantity:     req.Quantity,
		Note:         req.Note,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusCreated, "Waste recorded successfully", result)
}

// AdjustStock handles POST /api/inventory/adjust
func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	req, date, err := h.decodeStock(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.adjustStockHandler.Handle(r.Context(), command.AdjustStockCommand{
		ProductID:    req.ProductID,
		BusinessDate: date,
		Quantity:     req.Quantity,
		Note:         req.Note,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	message := "Stock adjusted successfully"
	if result.Movement == nil {
		message = "Stock unchanged"
	}
	httpx.RespondOK(w, http.StatusOK, message, result)
}

// GetDailySummary handles GET /api/inventory/summary/{product_id}
func (h *InventoryHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	productID, err := httpx.PathUint(r, "product_id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	date, err := h.calendar.DateOr(r.URL.Query().Get("date"))
	if err != nil {
		httpx.RespondError(w, r, apperr.Invalid("%v", err))
		return
	}

	summary, err := h.summaryHandler.Handle(r.Context(), query.GetDailySummaryQuery{
		ProductID:    productID,
		BusinessDate: date,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", summary)
}

// ListDailyRecords handles GET /api/inventory/daily
func (h *InventoryHandler) ListDailyRecords(w http.ResponseWriter, r *http.Request) {
	date, err := h.calendar.DateOr(r.URL.Query().Get("date"))
	if err != nil {
		httpx.RespondError(w, r, apperr.Invalid("%v", err))
		return
	}

	records, err := h.recordsHandler.Handle(r.Context(), query.ListDailyRecordsQuery{BusinessDate: date})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"business_date": date,
		"records":       records,
	})
}

// ListMovements handles GET /api/inventory/movements
func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	productID, err := httpx.QueryUint(r, "product_id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	filter := domain.MovementFilter{
		ProductID: productID,
		Limit:     httpx.QueryInt(r, "limit"),
		Offset:    httpx.QueryInt(r, "offset"),
	}
	if kind := r.URL.Query().Get("range"); kind != "" {
		rng, err := h.calendar.Resolve(period.Kind(kind), r.URL.Query().Get("date"))
		if err != nil {
			httpx.RespondError(w, r, apperr.Invalid("%v", err))
			return
		}
		filter.Range = &rng
	}

	movements, err := h.movementsHandler.Handle(r.Context(), query.ListMovementsQuery{Filter: filter})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"movements": movements,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})
}

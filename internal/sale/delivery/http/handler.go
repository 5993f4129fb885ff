package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/internal/sale/usecase/command"
	"github.com/tair/dairy-ledger/internal/sale/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/period"
)

// IdempotencyHeader carries the client's retry key
const IdempotencyHeader = "Idempotency-Key"

// SaleHandler handles HTTP requests for sales
type SaleHandler struct {
	createHandler *command.CreateSaleHandler
	getHandler    *query.GetSaleHandler
	listHandler   *query.ListSalesHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(
	createHandler *command.CreateSaleHandler,
	getHandler *query.GetSaleHandler,
	listHandler *query.ListSalesHandler,
	calendar *period.Calendar,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *SaleHandler {
	return &SaleHandler{
		createHandler: createHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		calendar:      calendar,
		guard:         guard,
		metrics:       metrics,
	}
}

func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageSells)

	routes.Handle(http.MethodGet, "/api/sales", h.ListSales)
	routes.Handle(http.MethodGet, "/api/sales/{id}", h.GetSale)
	routes.Handle(http.MethodPost, "/api/sales", h.CreateSale)
}

type itemRequest struct {
	ProductID    uint             `json:"product_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit"`
}

type createSaleRequest struct {
	CustomerID     *uint              `json:"customer_id"`
	Items          []itemRequest      `json:"items"`
	PaymentMode    domain.PaymentMode `json:"payment_mode"`
	PaidAmount     decimal.Decimal    `json:"paid_amount"`
	BusinessDate   string             `json:"business_date"`
	IdempotencyKey string             `json:"idempotency_key"`
}

// CreateSale handles POST /api/sales
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	date, err := h.calendar.DateOr(req.BusinessDate)
	if err != nil {
		httpx.RespondError(w, r, apperr.Invalid("%v", err))
		return
	}

	cmd := command.CreateSaleCommand{
		CustomerID:     req.CustomerID,
		PaymentMode:    req.PaymentMode,
		PaidAmount:     req.PaidAmount,
		BusinessDate:   date,
		IdempotencyKey: r.Header.Get(IdempotencyHeader),
	}
	if cmd.IdempotencyKey == "" {
		cmd.IdempotencyKey = req.IdempotencyKey
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.LineItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
		})
	}

	result, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if result.Replayed {
		httpx.RespondOK(w, http.StatusOK, "Sale already recorded", result)
		return
	}
	httpx.RespondOK(w, http.StatusCreated, "Sale recorded successfully", result)
}

// GetSale handles GET /api/sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	sale, err := h.getHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", sale)
}

// ListSales handles GET /api/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	customerID, err := httpx.QueryUint(r, "customer_id")
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	filter := domain.ListFilter{
		CustomerID: customerID,
		Mode:       domain.PaymentMode(r.URL.Query().Get("mode")),
		Status:     domain.PaymentStatus(r.URL.Query().Get("status")),
		Limit:      httpx.QueryInt(r, "limit"),
		Offset:     httpx.QueryInt(r, "offset"),
	}
	if kind := r.URL.Query().Get("range"); kind != "" {
		rng, err := h.calendar.Resolve(period.Kind(kind), r.URL.Query().Get("date"))
		if err != nil {
			httpx.RespondError(w, r, apperr.Invalid("%v", err))
			return
		}
		filter.Range = &rng
	}

	list, err := h.listHandler.Handle(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", list)
}

package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/product/domain"
	"github.com/tair/dairy-ledger/internal/product/usecase/command"
	"github.com/tair/dairy-ledger/internal/product/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/metrics"
	"github.com/tair/dairy-ledger/pkg/period"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	statsHandler      *query.GetStatsHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	statsHandler *query.GetStatsHandler,
	calendar *period.Calendar,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *ProductHandler {
	return &ProductHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
		statsHandler:      statsHandler,
		calendar:          calendar,
		guard:             guard,
		metrics:           metrics,
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageProducts)

	routes.Handle(http.MethodGet, "/api/products", h.ListProducts)
	routes.Handle(http.MethodGet, "/api/products/stats", h.GetStats)
	routes.Handle(http.MethodGet, "/api/products/{id}", h.GetProduct)

	routes.Handle(http.MethodPost, "/api/products", h.CreateProduct)
	routes.Handle(http.MethodPut, "/api/products/{id}", h.UpdateProduct)
	routes.Handle(http.MethodDelete, "/api/products/{id}", h.DeleteProduct)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string          `json:"name"`
		Unit         domain.Unit     `json:"unit"`
		PricePerUnit decimal.Decimal `json:"price_per_unit"`
		Quantity     decimal.Decimal `json:"quantity"`
		BusinessDate string          `json:"business_date"`
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

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:            req.Name,
		Unit:            req.Unit,
		PricePerUnit:    req.PricePerUnit,
		InitialQuantity: req.Quantity,
		BusinessDate:    date,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).Uint("product_id", product.ID).Str("name", product.Name).Msg("Product created")
	h.updateProductsMetric(r.Context())

	httpx.RespondOK(w, http.StatusCreated, "Product created successfully", product)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{
		Limit:      httpx.QueryInt(r, "limit"),
		Offset:     httpx.QueryInt(r, "offset"),
		ActiveOnly: r.URL.Query().Get("status") != "all",
		Search:     r.URL.Query().Get("search"),
	}

	products, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"products": products,
		"limit":    q.Limit,
		"offset":   q.Offset,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", product)
}

// UpdateProduct handles PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Name         string          `json:"name"`
		Unit         domain.Unit     `json:"unit"`
		PricePerUnit decimal.Decimal `json:"price_per_unit"`
		IsActive     *bool           `json:"is_active"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:           id,
		Name:         req.Name,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		IsActive:     req.IsActive,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	h.updateProductsMetric(r.Context())

	message := "Product deleted successfully"
	if result.Deactivated {
		message = "Product has stock history and was deactivated"
	}
	httpx.RespondOK(w, http.StatusOK, message, result)
}

// GetStats handles GET /api/products/stats
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", stats)
}

func (h *ProductHandler) updateProductsMetric(ctx context.Context) {
	stats, err := h.statsHandler.Handle(ctx, query.GetStatsQuery{})
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to refresh product gauge")
		return
	}
	metrics.ActiveProducts.Set(float64(stats.ActiveProducts))
}

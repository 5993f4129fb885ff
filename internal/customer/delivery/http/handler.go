package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/dairy-ledger/internal/customer/usecase/command"
	"github.com/tair/dairy-ledger/internal/customer/usecase/query"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/logger"
)

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	createHandler *command.CreateCustomerHandler
	updateHandler *command.UpdateCustomerHandler
	deleteHandler *command.DeleteCustomerHandler

	getHandler  *query.GetCustomerHandler
	listHandler *query.ListCustomersHandler

	guard   *httpx.Guard
	metrics *httpx.Metrics
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	createHandler *command.CreateCustomerHandler,
	updateHandler *command.UpdateCustomerHandler,
	deleteHandler *command.DeleteCustomerHandler,
	getHandler *query.GetCustomerHandler,
	listHandler *query.ListCustomersHandler,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *CustomerHandler {
	return &CustomerHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		guard:         guard,
		metrics:       metrics,
	}
}

func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageCustomers)

	routes.Handle(http.MethodGet, "/api/customers", h.ListCustomers)
	routes.Handle(http.MethodGet, "/api/customers/{id}", h.GetCustomer)
	routes.Handle(http.MethodPost, "/api/customers", h.CreateCustomer)
	routes.Handle(http.MethodPut, "/api/customers/{id}", h.UpdateCustomer)
	routes.Handle(http.MethodDelete, "/api/customers/{id}", h.DeleteCustomer)
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	customer, err := h.createHandler.Handle(r.Context(), command.CreateCustomerCommand{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).Uint("customer_id", customer.ID).Str("name", customer.Name).Msg("Customer created")
	httpx.RespondOK(w, http.StatusCreated, "Customer created successfully", customer.View())
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := query.ListCustomersQuery{
		Limit:      httpx.QueryInt(r, "limit"),
		Offset:     httpx.QueryInt(r, "offset"),
		ActiveOnly: r.URL.Query().Get("status") != "all",
		Search:     r.URL.Query().Get("search"),
		WithDues:   r.URL.Query().Get("dues") == "true",
	}

	customers, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"customers": customers,
		"limit":     q.Limit,
		"offset":    q.Offset,
	})
}

// GetCustomer handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	customer, err := h.getHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", customer)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	var req struct {
		Name    string  `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	customer, err := h.updateHandler.Handle(r.Context(), command.UpdateCustomerCommand{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Customer updated successfully", customer.View())
}

// DeleteCustomer handles DELETE /api/customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	result, err := h.deleteHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	message := "Customer deleted successfully"
	if result.Deactivated {
		message = "Customer has sales or payments and was deactivated"
	}
	httpx.RespondOK(w, http.StatusOK, message, result)
}

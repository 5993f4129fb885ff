package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/expense/domain"
	"github.com/tair/dairy-ledger/internal/expense/usecase/command"
	"github.com/tair/dairy-ledger/internal/expense/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/period"
)

// ExpenseHandler handles HTTP requests for expenses
type ExpenseHandler struct {
	createHandler *command.CreateExpenseHandler
	updateHandler *command.UpdateExpenseHandler
	deleteHandler *command.DeleteExpenseHandler

	getHandler  *query.GetExpenseHandler
	listHandler *query.ListExpensesHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(
	createHandler *command.CreateExpenseHandler,
	updateHandler *command.UpdateExpenseHandler,
	deleteHandler *command.DeleteExpenseHandler,
	getHandler *query.GetExpenseHandler,
	listHandler *query.ListExpensesHandler,
	calendar *period.Calendar,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *ExpenseHandler {
	return &ExpenseHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		calendar:      calendar,
		guard:         guard,
		metrics:       metrics,
	}
}

func (h *ExpenseHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageExpenses)

	routes.Handle(http.MethodGet, "/api/expenses", h.ListExpenses)
	routes.Handle(http.MethodGet, "/api/expenses/{id}", h.GetExpense)
	routes.Handle(http.MethodPost, "/api/expenses", h.CreateExpense)
	routes.Handle(http.MethodPut, "/api/expenses/{id}", h.UpdateExpense)
	routes.Handle(http.MethodDelete, "/api/expenses/{id}", h.DeleteExpense)
}

type expenseRequest struct {
	Title        string             `json:"title"`
	Category     domain.Category    `json:"category"`
	Amount       decimal.Decimal    `json:"amount"`
	PaymentMode  domain.PaymentMode `json:"payment_mode"`
	BusinessDate string             `json:"business_date"`
	Note         string             `json:"note"`
}

func (h *ExpenseHandler) decode(r *http.Request) (command.ExpenseInput, error) {
	var req expenseRequest
	if err := httpx.Decode(r, &req); err != nil {
		return command.ExpenseInput{}, err
	}
	date, err := h.calendar.DateOr(req.BusinessDate)
	if err != nil {
		return command.ExpenseInput{}, apperr.Invalid("%v", err)
	}
	mode := req.PaymentMode
	if mode == "" {
		mode = domain.ModeCash
	}
	return command.ExpenseInput{
		Title:        req.Title,
		Category:     req.Category,
		Amount:       req.Amount,
		PaymentMode:  mode,
		BusinessDate: date,
		Note:         req.Note,
	}, nil
}

// CreateExpense handles POST /api/expenses
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	expense, err := h.createHandler.Handle(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusCreated, "Expense created successfully", expense)
}

// UpdateExpense handles PUT /api/expenses/{id}
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	in, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	expense, err := h.updateHandler.Handle(r.Context(), command.UpdateExpenseCommand{ID: id, Expense: in})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Expense updated successfully", expense)
}

// DeleteExpense handles DELETE /api/expenses/{id}
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), id); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Expense deleted successfully", nil)
}

// GetExpense handles GET /api/expenses/{id}
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	expense, err := h.getHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", expense)
}

// ListExpenses handles GET /api/expenses
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := domain.ListFilter{
		Category:    domain.Category(r.URL.Query().Get("category")),
		PaymentMode: domain.PaymentMode(r.URL.Query().Get("payment_mode")),
		Limit:       httpx.QueryInt(r, "limit"),
		Offset:      httpx.QueryInt(r, "offset"),
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

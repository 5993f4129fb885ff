package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/dairy-ledger/internal/dashboard/usecase/query"
	"github.com/tair/dairy-ledger/pkg/apperr"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/period"
)

// DashboardHandler serves the dashboard summary
type DashboardHandler struct {
	statsHandler *query.GetStatsHandler

	calendar *period.Calendar
	guard    *httpx.Guard
	metrics  *httpx.Metrics
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(statsHandler *query.GetStatsHandler, calendar *period.Calendar, guard *httpx.Guard, metrics *httpx.Metrics) *DashboardHandler {
	return &DashboardHandler{statsHandler: statsHandler, calendar: calendar, guard: guard, metrics: metrics}
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageDashboard)
	routes.Handle(http.MethodGet, "/api/dashboard/stats", h.GetStats)
}

// GetStats godoc
// @Summary Dashboard summary
// @Description Product and customer counts with the day's sales, expenses and cash available
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param date query string false "Business date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} object{success=bool,data=object{business_date=string,total_products=int,low_stock=int,total_customers=int,today_sales=number,today_sales_count=int,today_collected=number,today_expenses=number,cash_available=number}}
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	date, err := h.calendar.DateOr(r.URL.Query().Get("date"))
	if err != nil {
		httpx.RespondError(w, r, apperr.Invalid("%v", err))
		return
	}

	stats, err := h.statsHandler.Handle(r.Context(), date)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", stats)
}

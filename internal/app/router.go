package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/tair/dairy-ledger/docs"
	cashhttp "github.com/tair/dairy-ledger/internal/cash/delivery/http"
	customerhttp "github.com/tair/dairy-ledger/internal/customer/delivery/http"
	dashboardhttp "github.com/tair/dairy-ledger/internal/dashboard/delivery/http"
	expensehttp "github.com/tair/dairy-ledger/internal/expense/delivery/http"
	inventoryhttp "github.com/tair/dairy-ledger/internal/inventory/delivery/http"
	ledgerhttp "github.com/tair/dairy-ledger/internal/ledger/delivery/http"
	producthttp "github.com/tair/dairy-ledger/internal/product/delivery/http"
	salehttp "github.com/tair/dairy-ledger/internal/sale/delivery/http"
	userhttp "github.com/tair/dairy-ledger/internal/user/delivery/http"
	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/httpx"
)

// Handlers groups the HTTP delivery of every module
type Handlers struct {
	Products  *producthttp.ProductHandler
	Customers *customerhttp.CustomerHandler
	Inventory *inventoryhttp.InventoryHandler
	Sales     *salehttp.SaleHandler
	Ledger    *ledgerhttp.LedgerHandler
	Cash      *cashhttp.CashHandler
	Expenses  *expensehttp.ExpenseHandler
	Users     *userhttp.UserHandler
	Dashboard *dashboardhttp.DashboardHandler
}

// NewRouter registers every module's routes behind the middleware chain
func NewRouter(cfg *config.Config, h *Handlers, db *gorm.DB, limiter *httpx.RateLimiter) http.Handler {
	router := mux.NewRouter()

	mwConfig := httpx.DefaultMiddlewareConfig(cfg.ServiceName, cfg.RequestTimeout)
	mwConfig.RateLimiter = limiter
	httpx.RegisterMiddlewares(router, mwConfig)

	h.Products.RegisterRoutes(router)
	h.Customers.RegisterRoutes(router)
	h.Inventory.RegisterRoutes(router)
	h.Sales.RegisterRoutes(router)
	h.Ledger.RegisterRoutes(router)
	h.Cash.RegisterRoutes(router)
	h.Expenses.RegisterRoutes(router)
	h.Users.RegisterRoutes(router)
	h.Dashboard.RegisterRoutes(router)

	router.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return httpx.WithCORS(router, mwConfig)
}

// healthHandler godoc
// @Summary Health check
// @Description Pings the database
// @Tags Health
// @Produce json
// @Success 200 {object} httpx.Response
// @Failure 503 {object} httpx.Response
// @Router /health [get]
func healthHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pingDB(r.Context(), db); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, httpx.Response{
				Success: false,
				Error:   "database unavailable",
			})
			return
		}
		httpx.RespondOK(w, http.StatusOK, "service is healthy", nil)
	}
}

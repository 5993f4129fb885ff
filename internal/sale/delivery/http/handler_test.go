package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cashdomain "github.com/tair/dairy-ledger/internal/cash/domain"
	customerdomain "github.com/tair/dairy-ledger/internal/customer/domain"
	"github.com/tair/dairy-ledger/internal/inventory"
	inventorydomain "github.com/tair/dairy-ledger/internal/inventory/domain"
	productdomain "github.com/tair/dairy-ledger/internal/product/domain"
	salehttp "github.com/tair/dairy-ledger/internal/sale/delivery/http"
	"github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/internal/sale/repository"
	"github.com/tair/dairy-ledger/internal/sale/usecase/command"
	"github.com/tair/dairy-ledger/internal/sale/usecase/query"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

type env struct {
	router   *mux.Router
	gw       store.Gateway
	milk     *productdomain.Product
	customer *customerdomain.Customer
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	gw := storetest.NewGateway(t,
		&productdomain.Product{}, &customerdomain.Customer{},
		&domain.Sale{}, &domain.LineItem{},
		&inventorydomain.DailyRecord{}, &inventorydomain.StockMovement{},
		&cashdomain.CashEntry{},
	)

	milk := &productdomain.Product{Name: "Toned Milk", Unit: productdomain.UnitLiter, PricePerUnit: decimal.NewFromInt(50), IsActive: true}
	customer := &customerdomain.Customer{Name: "Ramesh", Phone: "9800000001", IsActive: true}
	require.NoError(t, gw.Create(ctx, milk))
	require.NoError(t, gw.Create(ctx, customer))
	_, err := inventory.NewEngine(gw, inventory.Policy{}).RecordStockAddition(ctx, milk.ID, "2026-10-18", decimal.NewFromInt(10), "")
	require.NoError(t, err)

	runner := store.NewRunner(gw, 3)
	repo := repository.NewSaleRepository(gw)
	calendar := period.NewCalendar(time.UTC).WithClock(func() time.Time {
		return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	})

	handler := salehttp.NewSaleHandler(
		command.NewCreateSaleHandler(runner, inventory.Policy{}, productdomain.LowStockThreshold(2), nil, nil),
		query.NewGetSaleHandler(repo),
		query.NewListSalesHandler(repo),
		calendar,
		httpx.NewGuard(false),
		httpx.NewMetrics(prometheus.NewRegistry()),
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return &env{router: router, gw: gw, milk: milk, customer: customer}
}

func (e *env) post(t *testing.T, key, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(salehttp.IdempotencyHeader, key)
	}
	e.router.ServeHTTP(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (e *env) count(t *testing.T, model store.Document) int64 {
	t.Helper()
	n, err := e.gw.Count(context.Background(), model, store.Q())
	require.NoError(t, err)
	return n
}

func decField(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := m[key].(string)
	require.True(t, ok, "%s is %T", key, m[key])
	return decimal.RequireFromString(s)
}

func TestCreateSaleReplaysHeaderKey(t *testing.T) {
	e := setup(t)
	body := `{"customer_id":1,"items":[{"product_id":1,"quantity":"2"}],"payment_mode":"cash","paid_amount":"60"}`

	rec, resp := e.post(t, "till-1-0007", body)
	require.Equal(t, http.StatusCreated, rec.Code, resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["replayed"])
	assert.True(t, decField(t, data, "new_total_due").Equal(decimal.NewFromInt(40)))

	sale := data["sale"].(map[string]interface{})
	assert.Equal(t, "till-1-0007", sale["idempotency_key"])
	assert.Equal(t, "2026-10-18", sale["business_date"])
	assert.Equal(t, string(domain.StatusPartial), sale["payment_status"])

	rec, resp = e.post(t, "till-1-0007", body)
	require.Equal(t, http.StatusOK, rec.Code, resp)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["replayed"])
	assert.EqualValues(t, sale["id"], data["sale"].(map[string]interface{})["id"])

	assert.EqualValues(t, 1, e.count(t, &domain.Sale{}))
	assert.EqualValues(t, 1, e.count(t, &cashdomain.CashEntry{}))
}

func TestCreateSaleBodyKeyWhenHeaderMissing(t *testing.T) {
	e := setup(t)
	body := `{"items":[{"product_id":1,"quantity":"1"}],"payment_mode":"upi","paid_amount":"50","idempotency_key":"body-key"}`

	rec, resp := e.post(t, "", body)
	require.Equal(t, http.StatusCreated, rec.Code, resp)
	sale := resp["data"].(map[string]interface{})["sale"].(map[string]interface{})
	assert.Equal(t, "body-key", sale["idempotency_key"])
	assert.Equal(t, inventorydomain.WalkIn, sale["customer_name"])
}

func TestCreateSaleFailureReportsStep(t *testing.T) {
	e := setup(t)

	rec, resp := e.post(t, "", `{"customer_id":1,"items":[{"product_id":99,"quantity":"1"}],"payment_mode":"pending"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, command.StepLoadProducts, resp["step"])

	require.NoError(t, e.gw.Update(context.Background(), &customerdomain.Customer{}, e.customer.ID, map[string]interface{}{"is_active": false}))
	rec, resp = e.post(t, "", `{"customer_id":1,"items":[{"product_id":1,"quantity":"1"}],"payment_mode":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, command.StepApplyLedger, resp["step"])

	rec, resp = e.post(t, strings.Repeat("x", domain.MaxIdempotencyKeyLen+1), `{"items":[{"product_id":1,"quantity":"1"}],"payment_mode":"cash","paid_amount":"50"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, resp["step"])

	assert.EqualValues(t, 0, e.count(t, &domain.Sale{}))
}

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
	ledgerhttp "github.com/tair/dairy-ledger/internal/ledger/delivery/http"
	"github.com/tair/dairy-ledger/internal/ledger/domain"
	"github.com/tair/dairy-ledger/internal/ledger/usecase/command"
	"github.com/tair/dairy-ledger/internal/ledger/usecase/query"
	saledomain "github.com/tair/dairy-ledger/internal/sale/domain"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/period"
	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

const today = period.Date("2026-10-18")

type env struct {
	router *mux.Router
	gw     store.Gateway
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	gw := storetest.NewGateway(t,
		&customerdomain.Customer{}, &saledomain.Sale{}, &saledomain.LineItem{},
		&domain.Payment{}, &domain.PaymentAllocation{}, &cashdomain.CashEntry{},
	)

	customer := &customerdomain.Customer{Name: "Lakshmi", Phone: "9800000002", TotalDue: decimal.NewFromInt(300), IsActive: true}
	require.NoError(t, gw.Create(ctx, customer))
	require.NoError(t, gw.Create(ctx, &saledomain.Sale{
		CustomerID:      &customer.ID,
		CustomerName:    customer.Name,
		TotalAmount:     decimal.NewFromInt(300),
		PaidAmount:      decimal.Zero,
		RemainingAmount: decimal.NewFromInt(300),
		PaymentMode:     saledomain.ModePending,
		PaymentStatus:   saledomain.StatusPartial,
		IdempotencyKey:  "sale-1",
		BusinessDate:    today,
		SoldAt:          time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
	}))

	runner := store.NewRunner(gw, 3)
	calendar := period.NewCalendar(time.UTC).WithClock(func() time.Time {
		return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	})
	handler := ledgerhttp.NewLedgerHandler(
		command.NewApplyPaymentHandler(runner, nil, nil),
		command.NewRecomputeDueHandler(runner, nil),
		query.NewGetCustomerLedgerHandler(runner),
		calendar,
		httpx.NewGuard(false),
		httpx.NewMetrics(prometheus.NewRegistry()),
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return &env{router: router, gw: gw}
}

func (e *env) do(t *testing.T, method, path, key, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(ledgerhttp.IdempotencyHeader, key)
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

func TestApplyPaymentReplaysHeaderKey(t *testing.T) {
	e := setup(t)
	body := `{"amount":"500","method":"cash"}`

	rec, resp := e.do(t, http.MethodPost, "/api/customers/1/payments", "counter-55", body)
	require.Equal(t, http.StatusCreated, rec.Code, resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["replayed"])
	assert.True(t, decField(t, data, "new_total_due").Equal(decimal.NewFromInt(-200)))
	assert.Len(t, data["allocations"], 1)

	payment := data["payment"].(map[string]interface{})
	assert.Equal(t, "counter-55", payment["idempotency_key"])
	assert.True(t, decField(t, payment, "unapplied_amount").Equal(decimal.NewFromInt(200)))

	rec, resp = e.do(t, http.MethodPost, "/api/customers/1/payments", "counter-55", body)
	require.Equal(t, http.StatusOK, rec.Code, resp)
	data = resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["replayed"])
	assert.True(t, decField(t, data, "new_total_due").Equal(decimal.NewFromInt(-200)))

	assert.EqualValues(t, 1, e.count(t, &domain.Payment{}))
	assert.EqualValues(t, 1, e.count(t, &cashdomain.CashEntry{}))

	rec, resp = e.do(t, http.MethodGet, "/api/customers/1/ledger", "", "")
	require.Equal(t, http.StatusOK, rec.Code, resp)
	ledger := resp["data"].(map[string]interface{})
	assert.Equal(t, true, ledger["in_sync"])
	assert.True(t, decField(t, ledger, "computed_due").Equal(decimal.NewFromInt(-200)))

	rec, resp = e.do(t, http.MethodPost, "/api/customers/1/recompute", "", "")
	require.Equal(t, http.StatusOK, rec.Code, resp)
	assert.True(t, decField(t, resp["data"].(map[string]interface{}), "total_due").Equal(decimal.NewFromInt(-200)))
}

func TestApplyPaymentRejectsBadInput(t *testing.T) {
	e := setup(t)

	cases := []struct {
		name   string
		path   string
		key    string
		body   string
		status int
	}{
		{"below one paisa", "/api/customers/1/payments", "", `{"amount":"0.004","method":"cash"}`, http.StatusBadRequest},
		{"unknown method", "/api/customers/1/payments", "", `{"amount":"10","method":"barter"}`, http.StatusBadRequest},
		{"long key", "/api/customers/1/payments", strings.Repeat("k", domain.MaxIdempotencyKeyLen+1), `{"amount":"10","method":"upi"}`, http.StatusBadRequest},
		{"bad date", "/api/customers/1/payments", "", `{"amount":"10","method":"upi","business_date":"18-10-2026"}`, http.StatusBadRequest},
		{"unknown customer", "/api/customers/7/payments", "", `{"amount":"10","method":"upi"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := e.do(t, http.MethodPost, tc.path, tc.key, tc.body)
			assert.Equal(t, tc.status, rec.Code, resp)
			assert.Equal(t, false, resp["success"])
		})
	}

	assert.EqualValues(t, 0, e.count(t, &domain.Payment{}))
}

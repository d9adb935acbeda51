package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/resale-ledger-api/infrastructure/database/sqlite"
	"github.com/vfg2006/resale-ledger-api/infrastructure/repository"
	"github.com/vfg2006/resale-ledger-api/internal/config"
	"github.com/vfg2006/resale-ledger-api/internal/domain"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/resale-ledger-api/internal/usecases/ledger"
	"github.com/vfg2006/resale-ledger-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const ownerPassword = "correct horse"

type stubBackup struct {
	triggered int
}

func (s *stubBackup) TriggerManualSync() { s.triggered++ }

func (s *stubBackup) GetStatus() map[string]any {
	return map[string]any{"backup_enabled": false}
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	token   string
	backup  *stubBackup
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{SecretKey: "test-secret"}
	cfg.Auth.OwnerPasswordHash = string(hash)
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	return newTestAPIWithConfig(t, cfg)
}

func newTestAPIWithConfig(t *testing.T, cfg *config.Config) *testAPI {
	t.Helper()

	conn := sqlite.NewTestConnection(t)
	ledgerService := ledger.NewService(
		repository.NewSaleRepository(conn),
		repository.NewInventoryRepository(conn),
		repository.NewExpenseRepository(conn),
	)

	backup := &stubBackup{}
	return &testAPI{
		t:       t,
		handler: NewHandler(cfg, ledgerService, authenticating.NewService(cfg), backup),
		backup:  backup,
	}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login() {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/v1/login", domain.LoginRequest{Password: ownerPassword})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.LoginResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(a.t, resp.Token)
	a.token = resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPI_PublicAndProtectedRoutes(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/healthcheck", nil).Code)

	rec := api.do(http.MethodGet, "/v1/sales", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidToken, decode[apiErrors.APIError](t, rec).Code)

	rec = api.do(http.MethodPost, "/v1/login", domain.LoginRequest{Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidCredentials, decode[apiErrors.APIError](t, rec).Code)

	api.login()
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/v1/sales", nil).Code)
}

func TestAPI_SelfSignedTokenRejectedWithoutOwnerPassword(t *testing.T) {
	cfg := &config.Config{SecretKey: "test-secret"}
	api := newTestAPIWithConfig(t, cfg)

	claims := &domain.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   domain.OwnerSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey))
	require.NoError(t, err)
	api.token = token

	rec := api.do(http.MethodPost, "/v1/expenses", map[string]any{"name": "forged", "amount": "1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/v1/sales", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.do(http.MethodPost, "/v1/login", domain.LoginRequest{Password: "x"}).Code)
}

func TestAPI_InvalidSalePriceIsNotPersisted(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	rec := api.do(http.MethodPost, "/v1/sales", map[string]any{
		"item_name":  "Hat",
		"platform":   "Depop",
		"sale_date":  "2025-04-01",
		"sale_price": "twelve",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decode[apiErrors.APIError](t, rec)
	assert.Equal(t, apiErrors.ErrInvalidFormat, apiErr.Code)
	assert.Contains(t, apiErr.Message, "invalid sale price")

	rec = api.do(http.MethodGet, "/v1/sales?year=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]*domain.Sale](t, rec))
}

func TestAPI_SaleLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	rec := api.do(http.MethodPost, "/v1/sales", map[string]any{
		"item_name":     "Vintage Jacket",
		"platform":      "eBay",
		"sale_date":     "2025-03-01",
		"sale_price":    100,
		"item_cost":     "20",
		"shipping_cost": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := decode[domain.Sale](t, rec)
	assert.InDelta(t, 14.0, sale.PlatformFee, 1e-9)
	assert.InDelta(t, 61.0, sale.Profit, 1e-9)
	assert.Equal(t, "Sold", sale.Status)

	rec = api.do(http.MethodGet, "/v1/sales?year=2025&search=jacket&platform=ebay", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sales := decode[[]*domain.Sale](t, rec)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/v1/sales/"+sale.ID, nil).Code)

	rec = api.do(http.MethodDelete, "/v1/sales/"+sale.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrRecordNotFound, decode[apiErrors.APIError](t, rec).Code)
}

func TestAPI_MarkInventorySold(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	rec := api.do(http.MethodPost, "/v1/inventory", map[string]any{
		"item_name": "Denim Jacket",
		"item_cost": 20,
		"platforms": []string{"Depop", "eBay"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[domain.InventoryItem](t, rec)

	rec = api.do(http.MethodPost, "/v1/inventory/"+item.ID+"/sold", map[string]any{
		"platform":   "Depop",
		"sale_price": "50",
		"sale_date":  "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := decode[domain.Sale](t, rec)
	assert.InDelta(t, 2.10, sale.PlatformFee, 1e-9)
	assert.InDelta(t, 27.90, sale.Profit, 1e-9)
	require.NotNil(t, sale.ConvertedFrom)
	assert.Equal(t, item.ID, *sale.ConvertedFrom)

	rec = api.do(http.MethodGet, "/v1/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]*domain.InventoryItem](t, rec))

	rec = api.do(http.MethodPost, "/v1/inventory/"+item.ID+"/sold", map[string]any{"platform": "Depop", "sale_price": "50"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_DashboardAndExports(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	for _, body := range []map[string]any{
		{"item_name": "zeta", "platform": "Mercari", "sale_date": "2025-02-01", "sale_price": "10"},
		{"item_name": "Alpha", "platform": "Poshmark", "sale_date": "2025-03-01", "sale_price": "15"},
		{"item_name": "old", "platform": "eBay", "sale_date": "2024-03-01", "sale_price": "99"},
	} {
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/v1/sales", body).Code)
	}
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/v1/expenses", map[string]any{
		"name": "Mailers", "amount": "5", "date_added": "2025-01-15",
	}).Code)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/v1/inventory", map[string]any{
		"item_name": "Lamp", "item_cost": "12.5", "platforms": []string{"eBay"},
	}).Code)

	rec := api.do(http.MethodGet, "/v1/dashboard?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode[domain.Dashboard](t, rec)

	require.Len(t, dashboard.Sales, 2)
	assert.Equal(t, "Alpha", dashboard.Sales[0].ItemName)
	assert.InDelta(t, 25.0, dashboard.Stats.TotalSales, 1e-9)
	assert.InDelta(t, 5.0, dashboard.Stats.TotalExpenses, 1e-9)
	assert.InDelta(t, 12.5, dashboard.Stats.InventoryValue, 1e-9)
	assert.Equal(t, []string{"2025", "2024"}, dashboard.AvailableYears)

	rec = api.do(http.MethodGet, "/v1/export/sales?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="sales-2025.csv"`, rec.Header().Get("Content-Disposition"))
	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], `"2025-03-01","Alpha","Poshmark","15.00","3.00"`))

	rec = api.do(http.MethodGet, "/v1/export/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="inventory.csv"`, rec.Header().Get("Content-Disposition"))

	rec = api.do(http.MethodGet, "/v1/export/customers", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/v1/report.pdf?year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestAPI_InvalidFilters(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	for _, query := range []string{"platform=Etsy", "year=25", "start=01-01-2025"} {
		rec := api.do(http.MethodGet, "/v1/dashboard?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestAPI_Backup(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	assert.Equal(t, http.StatusAccepted, api.do(http.MethodPost, "/v1/backup/run", nil).Code)
	assert.Equal(t, 1, api.backup.triggered)

	rec := api.do(http.MethodGet, "/v1/backup/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode[map[string]any](t, rec)["backup_enabled"])
}

func TestAPI_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/v1/customers", nil).Code)
}

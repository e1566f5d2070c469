package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-api/internal/application/service"
	"github.com/sangkips/sales-api/internal/config"
	"github.com/sangkips/sales-api/internal/infrastructure/render"
	"github.com/sangkips/sales-api/internal/presentation/http/handler"
	"github.com/sangkips/sales-api/internal/presentation/http/middleware"
	"github.com/sangkips/sales-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

const testPassword = "Secr3t!pass"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	sales  *memSales
	keys   *memKeys
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	cfg := &config.Config{
		App:         config.AppConfig{Name: "sales-api", Env: "test"},
		Cookie:      config.CookieConfig{Name: "jwt", HTTPOnly: true},
		Idempotency: config.IdempotencyConfig{TTL: time.Hour},
	}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	users := &memUsers{}
	sales := newMemSales()
	keys := &memKeys{}

	router := Setup(&Handlers{
		Auth:   handler.NewAuthHandler(service.NewAuthService(users, jwtManager, log), jwtManager, cfg.Cookie),
		Sale:   handler.NewSaleHandler(service.NewSaleService(sales, users, log)),
		Report: handler.NewReportHandler(service.NewReportService(sales, log)),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: keys,
		Logger:          log,
	})

	return &testServer{t: t, router: router, sales: sales, keys: keys}
}

func (s *testServer) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signUp registers and logs in a user, returning the access token
func (s *testServer) signUp(username string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username, "email": username + "@example.com", "password": testPassword,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": testPassword})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(s.t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/health", "", nil)

	w := s.do(http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/sales", "/api/v1/reports/summary", "/api/v1/auth/profile"} {
		w := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRegister_PolicyAndDuplicates(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "bob", "email": "bob@example.com", "password": "weak",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	s.signUp("bob")
	w = s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "bob", "email": "other@example.com", "password": testPassword,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_SetsCookieUsableForAuth(t *testing.T) {
	s := newTestServer(t)
	s.signUp("bob")

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "bob", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "bob", decodeData(t, rec)["username"])
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	s.signUp("bob")

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "bob", "password": "Wrong!pass1"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/logout", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestSaleLifecycle(t *testing.T) {
	s := newTestServer(t)
	bob := s.signUp("bob")
	alice := s.signUp("alice")

	w := s.do(http.MethodPost, "/api/v1/sales", bob, gin.H{
		"product_name": "A", "amount": 2, "price": "10.50", "date": "2024-01-01T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData(t, w)
	assert.Equal(t, "bob", created["username"])
	assert.Equal(t, "21", created["revenue"])
	id := "/api/v1/sales/1"

	// only the owner may update
	update := gin.H{"id": 1, "product_name": "A", "amount": 3, "price": 10}
	w = s.do(http.MethodPut, id, alice, update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, id, bob, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), decodeData(t, w)["version"])

	// a client still holding version 1 is rejected
	update["version"] = 1
	w = s.do(http.MethodPut, id, bob, update)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPut, "/api/v1/sales/2", bob, update)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, id, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "30", decodeData(t, w)["revenue"])

	w = s.do(http.MethodDelete, id, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, id, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSale_Validation(t *testing.T) {
	s := newTestServer(t)
	bob := s.signUp("bob")

	w := s.do(http.MethodPost, "/api/v1/sales", bob, gin.H{"product_name": "A", "amount": -1, "price": 1})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"amount"`)
	assert.Empty(t, s.sales.rows)
}

func TestCreateSale_IdempotentReplay(t *testing.T) {
	s := newTestServer(t)
	bob := s.signUp("bob")
	body := gin.H{"product_name": "A", "amount": 1, "price": 5}

	first := s.do(http.MethodPost, "/api/v1/sales", bob, body, middleware.IdempotencyKeyHeader, "k-1")
	second := s.do(http.MethodPost, "/api/v1/sales", bob, body, middleware.IdempotencyKeyHeader, "k-1")

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Len(t, s.sales.rows, 1)
}

func TestListSales_Paginated(t *testing.T) {
	s := newTestServer(t)
	bob := s.signUp("bob")
	for day := 1; day <= 3; day++ {
		w := s.do(http.MethodPost, "/api/v1/sales", bob, gin.H{
			"product_name": "A", "amount": 1, "price": 1,
			"date": time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodGet, "/api/v1/sales?page=1&per_page=2&from=2024-01-02", bob, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Len(t, data["items"], 2)
	pg := data["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pg["total"])
}

func seedScenario(t *testing.T, s *testServer) string {
	t.Helper()
	bob := s.signUp("bob")
	alice := s.signUp("alice")
	for _, sale := range []struct {
		token string
		body  gin.H
	}{
		{bob, gin.H{"product_name": "A", "amount": 2, "price": 10, "date": "2024-01-01T09:00:00Z"}},
		{alice, gin.H{"product_name": "B", "amount": 1, "price": 5, "date": "2024-01-01T17:00:00Z"}},
		{bob, gin.H{"product_name": "A", "amount": 1, "price": 10, "date": "2024-01-02T12:00:00Z"}},
	} {
		w := s.do(http.MethodPost, "/api/v1/sales", sale.token, sale.body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	return bob
}

func TestReports_Summary(t *testing.T) {
	s := newTestServer(t)
	token := seedScenario(t, s)

	w := s.do(http.MethodGet, "/api/v1/reports/summary", token, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["total_sales"])
	assert.Equal(t, "35", data["total_revenue"])
}

func TestReports_WindowRestrictsSales(t *testing.T) {
	s := newTestServer(t)
	token := seedScenario(t, s)

	w := s.do(http.MethodGet, "/api/v1/reports/summary?from=2024-01-02&to=2024-01-02", token, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["total_sales"])
	assert.Equal(t, "10", data["total_revenue"])

	w = s.do(http.MethodGet, "/api/v1/reports/summary?from=yesterday", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestReports_TextDownload(t *testing.T) {
	s := newTestServer(t)
	token := seedScenario(t, s)

	w := s.do(http.MethodGet, "/api/v1/reports/text", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, render.ContentTypeText, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), handler.TextReportFilename)
	assert.True(t, strings.Contains(w.Body.String(), "35.00"))
}

func TestReports_ExcelDownload(t *testing.T) {
	s := newTestServer(t)
	token := seedScenario(t, s)

	w := s.do(http.MethodGet, "/api/v1/reports/excel", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, render.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), handler.WorkbookReportFilename)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}

func TestReports_PDFDownload(t *testing.T) {
	s := newTestServer(t)
	token := seedScenario(t, s)

	w := s.do(http.MethodGet, "/api/v1/reports/pdf", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, render.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestReports_ChartInsufficientData(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("bob")

	w := s.do(http.MethodGet, "/api/v1/reports/chart", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["insufficient_data"])
}

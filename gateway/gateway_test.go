package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/sweetshop/pkg/config"
	"github.com/example/sweetshop/pkg/service"
	"github.com/example/sweetshop/pkg/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	gw    *Gateway
	admin string // bearer token
	user  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Name: "sweetshop-test"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpiryDays: 7},
	}
	logger := zap.NewNop()

	users := storetest.NewUsers()
	sweets := storetest.NewSweets()
	orders := storetest.NewOrders()

	authSvc := service.NewAuthService(users, &cfg.JWT, logger)
	inventorySvc := service.NewInventoryService(sweets, users, orders, logger)
	orderSvc := service.NewOrderService(orders, logger)

	gw := NewGateway(cfg, logger, authSvc, inventorySvc, orderSvc, nil)
	gw.SetupRoutes()

	ts := &testServer{gw: gw}

	admin := ts.do(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"username": "admin", "email": "admin@x.com", "password": "admin@123", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, admin.Code)
	ts.admin = decode(t, admin)["token"].(string)

	user := ts.do(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, user.Code)
	ts.user = decode(t, user)["token"].(string)

	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.gw.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (ts *testServer) addSweet(t *testing.T, name, category string, price float64, quantity int) string {
	t.Helper()
	w := ts.do(t, "POST", "/api/sweets", ts.admin, map[string]interface{}{
		"name": name, "category": category, "price": price, "quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)["sweet"].(map[string]interface{})["id"].(string)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, "POST", "/api/auth/login", "", map[string]interface{}{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = ts.do(t, "GET", "/api/auth/validate", ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
}

func TestRegisterConflict(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"username": "alice", "email": "fresh@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "GET", "/api/sweets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, "GET", "/api/sweets", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequired(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "POST", "/api/sweets", ts.user, map[string]interface{}{
		"name": "Choco Bar", "category": "Chocolate", "price": 2.5, "quantity": 5,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, "GET", "/api/orders", ts.user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, "GET", "/api/auth/stats", ts.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSweetCRUD(t *testing.T) {
	ts := newTestServer(t)

	id := ts.addSweet(t, "Choco Bar", "Chocolate", 2.50, 5)

	w := ts.do(t, "GET", "/api/sweets", ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sweets := decode(t, w)["sweets"].([]interface{})
	require.Len(t, sweets, 1)

	w = ts.do(t, "PUT", "/api/sweets/"+id, ts.admin, map[string]interface{}{"price": 3.0})
	require.Equal(t, http.StatusOK, w.Code)
	sweet := decode(t, w)["sweet"].(map[string]interface{})
	assert.Equal(t, 3.0, sweet["price"])

	w = ts.do(t, "PUT", "/api/sweets/"+id, ts.admin, map[string]interface{}{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, "DELETE", "/api/sweets/"+id, ts.admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, "DELETE", "/api/sweets/"+id, ts.admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchSweets(t *testing.T) {
	ts := newTestServer(t)

	ts.addSweet(t, "Choco Bar", "Chocolate", 2.50, 5)
	ts.addSweet(t, "Gummy Bears", "Gummy", 1.00, 10)

	w := ts.do(t, "GET", "/api/sweets/search?name=choco", ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["sweets"].([]interface{}), 1)

	w = ts.do(t, "GET", "/api/sweets/search?minPrice=2&maxPrice=3", ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["sweets"].([]interface{}), 1)

	w = ts.do(t, "GET", "/api/sweets/search?minPrice=abc", ts.user, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, "GET", "/api/sweets/categories", ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["categories"])
}

func TestPurchaseFlow(t *testing.T) {
	ts := newTestServer(t)

	id := ts.addSweet(t, "Choco Bar", "Chocolate", 2.50, 5)

	w := ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/purchase", id), ts.user, map[string]interface{}{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["sweet"].(map[string]interface{})["quantity"])
	assert.Equal(t, 7.50, body["order"].(map[string]interface{})["totalAmount"])

	// Remaining stock is 2, so 3 more cannot be fulfilled.
	w = ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/purchase", id), ts.user, map[string]interface{}{"quantity": 3})
	require.Equal(t, http.StatusConflict, w.Code)
	conflict := decode(t, w)
	assert.Equal(t, float64(2), conflict["available"])

	// Empty body defaults to one unit.
	w = ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/purchase", id), ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, "GET", "/api/orders/my-orders", ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"].([]interface{}), 2)
}

func TestRestockFlow(t *testing.T) {
	ts := newTestServer(t)

	id := ts.addSweet(t, "Choco Bar", "Chocolate", 2.50, 1)

	w := ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/restock", id), ts.user, map[string]interface{}{"quantity": 5})
	assert.Equal(t, http.StatusForbidden, w.Code, "restock is admin only")

	w = ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/restock", id), ts.admin, map[string]interface{}{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(6), decode(t, w)["sweet"].(map[string]interface{})["quantity"])

	w = ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/restock", id), ts.admin, map[string]interface{}{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderEndpoints(t *testing.T) {
	ts := newTestServer(t)

	id := ts.addSweet(t, "Choco Bar", "Chocolate", 2.50, 5)
	w := ts.do(t, "POST", fmt.Sprintf("/api/sweets/%s/purchase", id), ts.user, map[string]interface{}{"quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	orderID := decode(t, w)["order"].(map[string]interface{})["id"].(string)

	w = ts.do(t, "GET", "/api/orders/"+orderID, ts.user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	order := decode(t, w)["order"].(map[string]interface{})
	assert.Equal(t, "completed", order["status"])
	assert.Equal(t, 5.0, order["totalAmount"])

	w = ts.do(t, "PUT", fmt.Sprintf("/api/orders/%s/status", orderID), ts.admin, map[string]interface{}{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, "PUT", fmt.Sprintf("/api/orders/%s/status", orderID), ts.admin, map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, "GET", "/api/orders/stats", ts.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalOrders"])
	assert.Equal(t, float64(1), stats["cancelledOrders"])
}

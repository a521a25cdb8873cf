package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/models"
	"github.com/sporthub-id/sporthub-backend/internal/modules"
	"github.com/sporthub-id/sporthub-backend/internal/modules/shop"
	"github.com/sporthub-id/sporthub-backend/internal/routes"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.RefreshToken{},
		&shop.Product{}, &shop.Order{},
	))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessExpiry:    15 * time.Minute,
		JWTRefreshExpiry:   7 * 24 * time.Hour,
		OrderPaymentWindow: 10 * time.Hour,
		BankName:           "BCA",
		BankAccountNumber:  "1234567890",
		BankAccountHolder:  "Banyumas SportHub",
		AdminToken:         "super-admin-token",
	}

	app := fiber.New()
	routes.Setup(app, cfg, db, []modules.Module{shop.New(db, cfg)})
	return &testEnv{app: app, db: db, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, status)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "up", body["db"])
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.request(t, http.MethodGet, "/api/orders/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "andi@example.com")

	// Create an order.
	status, body := env.request(t, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"items":           []map[string]interface{}{{"name": "Shuttlecock", "price": 50, "quantity": 2}},
		"totalAmount":     100,
		"shippingAddress": "Jl. Raya 1",
	})
	require.Equal(t, http.StatusCreated, status)

	order := body["order"].(map[string]interface{})
	orderID := order["id"].(string)
	assert.Equal(t, "pending", order["status"])

	bankInfo := body["bankInfo"].(map[string]interface{})
	assert.Equal(t, "BCA", bankInfo["bankName"])
	assert.Equal(t, "1234567890", bankInfo["accountNumber"])

	// The order shows up under /orders/me.
	status, body = env.request(t, http.MethodGet, "/api/orders/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	orders := body["orders"].([]interface{})
	require.Len(t, orders, 1)

	// Push the deadline into the past; the next read sweeps it to expired.
	require.NoError(t, env.db.Model(&shop.Order{}).
		Where("id = ?", orderID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	status, body = env.request(t, http.MethodGet, "/api/orders/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	orders = body["orders"].([]interface{})
	require.Len(t, orders, 1)
	assert.Equal(t, "expired", orders[0].(map[string]interface{})["status"])

	// Payment proof after expiry is refused.
	status, body = env.request(t, http.MethodPost, "/api/orders/"+orderID+"/payment-proof", token, map[string]string{
		"paymentProofUrl": "https://img.example/proof.jpg",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "expired")
}

func TestTotalMismatchRejectedOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "andi@example.com")

	status, _ := env.request(t, http.MethodPost, "/api/orders", token, map[string]interface{}{
		"items":           []map[string]interface{}{{"name": "Shuttlecock", "price": 50, "quantity": 2}},
		"totalAmount":     150,
		"shippingAddress": "Jl. Raya 1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminGating(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "andi@example.com")

	// A regular user cannot list all orders or manage products.
	status, _ := env.request(t, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.request(t, http.MethodPost, "/api/products", token, map[string]interface{}{
		"name": "Racket", "price": 250,
	})
	assert.Equal(t, http.StatusForbidden, status)

	// The operator token opens the admin surface.
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Admin-Token", env.cfg.AdminToken)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A DB-promoted admin gets through without the header.
	require.NoError(t, env.db.Model(&models.User{}).
		Where("email = ?", "andi@example.com").
		Update("role", "admin").Error)
	adminToken := env.loginUser(t, "andi@example.com")

	status, _ = env.request(t, http.MethodGet, "/api/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func (e *testEnv) loginUser(t *testing.T, email string) string {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPublicProductListing(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "products")
}

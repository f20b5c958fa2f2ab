package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appintegration "github.com/shopsync/backend/internal/application/integration"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// stubVerifier accepts or rejects every signature
type stubVerifier struct {
	ok bool
}

func (v stubVerifier) VerifyWebhook(body []byte, signature string) bool {
	return v.ok
}

// mapDedupStore is a trivial in-process idempotency store for tests
type mapDedupStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMapDedupStore() *mapDedupStore {
	return &mapDedupStore{seen: make(map[string]bool)}
}

func (s *mapDedupStore) MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[deliveryID] {
		return false, nil
	}
	s.seen[deliveryID] = true
	return true, nil
}

func (s *mapDedupStore) IsProcessed(ctx context.Context, deliveryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[deliveryID], nil
}

func (s *mapDedupStore) Close() error { return nil }

func setupWebhookTest(t *testing.T, verified bool) (*gin.Engine, *persistence.GormOrderRepository, *mapDedupStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CustomerModel{},
		&models.OrderModel{},
		&models.OrderLineModel{},
	))

	orders := persistence.NewGormOrderRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	shops := persistence.NewGormShopRepository(db)

	ingest := appintegration.NewOrderIngestService(orders, customers, shops, nil, zap.NewNop())

	dedup := newMapDedupStore()
	handler := NewWebhookHandler(stubVerifier{ok: verified}, ingest, nil, dedup, time.Hour, zap.NewNop())

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine, orders, dedup
}

const orderWebhookBody = `{
	"id": 6543210987,
	"name": "#1001",
	"email": "maria@example.com",
	"total_price": "59.98",
	"financial_status": "paid",
	"created_at": "2026-03-14T10:00:00Z",
	"customer": {
		"id": 42,
		"email": "maria@example.com",
		"first_name": "María",
		"last_name": "García López"
	},
	"line_items": [
		{
			"id": 111,
			"title": "Camiseta básica",
			"variant_title": "M",
			"sku": "TSHIRT-M",
			"quantity": 2,
			"price": "29.99",
			"discount_allocations": [{"amount": "0.00"}]
		}
	]
}`

func postWebhook(engine *gin.Engine, body, signature, deliveryID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/orders/create", bytes.NewBufferString(body))
	if signature != "" {
		req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	}
	if deliveryID != "" {
		req.Header.Set("X-Shopify-Webhook-Id", deliveryID)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestOrderCreatedWebhook_IngestsOrder(t *testing.T) {
	engine, orders, _ := setupWebhookTest(t, true)

	w := postWebhook(engine, orderWebhookBody, "sig", "delivery-1")
	assert.Equal(t, http.StatusOK, w.Code)

	order, err := orders.FindByShopifyID(context.Background(), 6543210987)
	require.NoError(t, err)
	assert.Equal(t, "#1001", order.Name)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "TSHIRT-M", order.Lines[0].SKU)
}

func TestOrderCreatedWebhook_MissingSignature(t *testing.T) {
	engine, _, _ := setupWebhookTest(t, true)

	w := postWebhook(engine, orderWebhookBody, "", "delivery-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderCreatedWebhook_BadSignature(t *testing.T) {
	engine, orders, _ := setupWebhookTest(t, false)

	w := postWebhook(engine, orderWebhookBody, "forged", "delivery-1")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, err := orders.FindByShopifyID(context.Background(), 6543210987)
	assert.Error(t, err)
}

func TestOrderCreatedWebhook_DuplicateDeliveryAcknowledged(t *testing.T) {
	engine, _, _ := setupWebhookTest(t, true)

	first := postWebhook(engine, orderWebhookBody, "sig", "delivery-1")
	require.Equal(t, http.StatusOK, first.Code)

	second := postWebhook(engine, orderWebhookBody, "sig", "delivery-1")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "duplicate")
}

func TestOrderCreatedWebhook_RedeliveryIsIdempotentWithoutDedupHeader(t *testing.T) {
	engine, orders, _ := setupWebhookTest(t, true)

	require.Equal(t, http.StatusOK, postWebhook(engine, orderWebhookBody, "sig", "").Code)
	require.Equal(t, http.StatusOK, postWebhook(engine, orderWebhookBody, "sig", "").Code)

	// Re-ingestion upserts in place rather than duplicating
	order, err := orders.FindByShopifyID(context.Background(), 6543210987)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
}

func TestOrderCreatedWebhook_InvalidJSON(t *testing.T) {
	engine, _, _ := setupWebhookTest(t, true)

	w := postWebhook(engine, "{not json", "sig", "delivery-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handler

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appintegration "github.com/shopsync/backend/internal/application/integration"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

const (
	hmacHeader     = "X-Shopify-Hmac-Sha256"
	deliveryHeader = "X-Shopify-Webhook-Id"

	// submitTimeout bounds the background submission kicked off after a
	// webhook is acknowledged.
	submitTimeout = 60 * time.Second
)

// WebhookHandler receives storefront webhooks. Shopify expects a 2xx
// within a few seconds or it retries, so ingestion is synchronous and
// the ERP submission runs in the background.
type WebhookHandler struct {
	BaseHandler
	verifier integration.WebhookVerifier
	ingest   *appintegration.OrderIngestService
	submit   *appintegration.OrderSubmitService
	dedup    shared.IdempotencyStore
	dedupTTL time.Duration
	logger   *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(
	verifier integration.WebhookVerifier,
	ingest *appintegration.OrderIngestService,
	submit *appintegration.OrderSubmitService,
	dedup shared.IdempotencyStore,
	dedupTTL time.Duration,
	logger *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		ingest:   ingest,
		submit:   submit,
		dedup:    dedup,
		dedupTTL: dedupTTL,
		logger:   logger,
	}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/orders/create", h.OrderCreated)
	}
}

// OrderCreated handles the orders/create webhook
func (h *WebhookHandler) OrderCreated(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(hmacHeader)
	if signature == "" {
		h.BadRequest(c, "Missing webhook signature header")
		return
	}
	if !h.verifier.VerifyWebhook(body, signature) {
		h.Unauthorized(c, "Webhook signature verification failed")
		return
	}

	deliveryID := c.GetHeader(deliveryHeader)
	if h.alreadyProcessed(c.Request.Context(), deliveryID) {
		h.logger.Info("Duplicate webhook delivery acknowledged",
			zap.String("delivery_id", deliveryID),
		)
		h.Success(c, gin.H{"duplicate": true})
		return
	}

	var payload dto.OrderWebhook
	if err := json.Unmarshal(body, &payload); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid webhook payload")
		return
	}

	order, err := h.ingest.IngestOrder(c.Request.Context(), payload.ToStorefrontOrder())
	if err != nil {
		h.logger.Error("Webhook order ingestion failed",
			zap.Int64("shopify_id", payload.ID),
			zap.Error(err),
		)
		// A 5xx makes Shopify retry, which is what we want for
		// transient persistence failures.
		h.InternalError(c, "Failed to ingest order")
		return
	}

	h.markProcessed(c.Request.Context(), deliveryID)
	h.submitAsync(order)

	h.Success(c, gin.H{"order_id": order.ID})
}

// alreadyProcessed reports whether this delivery was handled before.
// Deduplication failures never block a webhook; worst case the order is
// upserted a second time, which is idempotent anyway.
func (h *WebhookHandler) alreadyProcessed(ctx context.Context, deliveryID string) bool {
	if h.dedup == nil || deliveryID == "" {
		return false
	}
	processed, err := h.dedup.IsProcessed(ctx, deliveryID)
	if err != nil {
		h.logger.Warn("Webhook deduplication check failed", zap.Error(err))
		return false
	}
	return processed
}

// markProcessed records the delivery after successful ingestion
func (h *WebhookHandler) markProcessed(ctx context.Context, deliveryID string) {
	if h.dedup == nil || deliveryID == "" {
		return
	}
	if _, err := h.dedup.MarkProcessed(ctx, deliveryID, h.dedupTTL); err != nil {
		h.logger.Warn("Failed to record webhook delivery", zap.Error(err))
	}
}

// submitAsync pushes the freshly ingested order to the ERP without
// holding up the webhook response.
func (h *WebhookHandler) submitAsync(order *commerce.Order) {
	if h.submit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		if _, err := h.submit.Submit(ctx, order); err != nil {
			h.logger.Warn("Background order submission failed",
				zap.String("order", order.Name),
				zap.Error(err),
			)
		}
	}()
}

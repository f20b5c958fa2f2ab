package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appintegration "github.com/shopsync/backend/internal/application/integration"
	"github.com/shopsync/backend/internal/domain/integration"
)

// defaultLogLimit caps the sync log listing when no limit is given
const defaultLogLimit = 50

// defaultDocumentWindow is how far back the ERP document listing looks
// when no range is given
const defaultDocumentWindow = 7 * 24 * time.Hour

// SyncHandler exposes manual triggers for the sync pipelines and
// read-only views of their state. The same operations run on a schedule;
// these endpoints exist for operators and for install-time setup.
type SyncHandler struct {
	BaseHandler
	submit   *appintegration.OrderSubmitService
	status   *appintegration.OrderStatusService
	stock    *appintegration.StockSyncService
	mappings *appintegration.ProductMappingService
	ingest   *appintegration.OrderIngestService
	syncLogs integration.SyncLogRepository
	erp      integration.ERPGateway
	logger   *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(
	submit *appintegration.OrderSubmitService,
	status *appintegration.OrderStatusService,
	stock *appintegration.StockSyncService,
	mappings *appintegration.ProductMappingService,
	ingest *appintegration.OrderIngestService,
	syncLogs integration.SyncLogRepository,
	erp integration.ERPGateway,
	logger *zap.Logger,
) *SyncHandler {
	return &SyncHandler{
		submit:   submit,
		status:   status,
		stock:    stock,
		mappings: mappings,
		ingest:   ingest,
		syncLogs: syncLogs,
		erp:      erp,
		logger:   logger,
	}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/orders", h.SubmitPending)
		sync.POST("/orders/:id/submit", h.SubmitOrder)
		sync.POST("/orders/backfill", h.Backfill)
		sync.POST("/status", h.SyncStatuses)
		sync.POST("/stock", h.SyncStock)
		sync.POST("/mappings", h.AutoMap)
		sync.GET("/mappings/stats", h.MappingStats)
		sync.GET("/documents", h.ListDocuments)
		sync.GET("/logs", h.RecentLogs)
	}
}

// SubmitOrder submits one order to the ERP by its local ID
func (h *SyncHandler) SubmitOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.submit.SubmitByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SubmitPending submits every unsubmitted order
func (h *SyncHandler) SubmitPending(c *gin.Context) {
	stats, err := h.submit.SubmitPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Backfill pulls the full order history from the storefront
func (h *SyncHandler) Backfill(c *gin.Context) {
	stats, err := h.ingest.Backfill(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// SyncStatuses polls the ERP for order status changes
func (h *SyncHandler) SyncStatuses(c *gin.Context) {
	stats, err := h.status.SyncStatuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// SyncStock pushes ERP stock levels to the storefront
func (h *SyncHandler) SyncStock(c *gin.Context) {
	stats, err := h.stock.SyncStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// AutoMap maps local variants to ERP articles by barcode
func (h *SyncHandler) AutoMap(c *gin.Context) {
	stats, err := h.mappings.AutoMapByBarcode(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// MappingStats reports mapping coverage of the local catalog
func (h *SyncHandler) MappingStats(c *gin.Context) {
	stats, err := h.mappings.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// ListDocuments lists order documents stored in the ERP for a date
// range, defaulting to the last seven days. Useful when reconciling a
// duplicate-reference rejection against what the ERP actually holds.
func (h *SyncHandler) ListDocuments(c *gin.Context) {
	to := time.Now()
	from := to.Add(-defaultDocumentWindow)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "from must be a date in YYYY-MM-DD format")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "to must be a date in YYYY-MM-DD format")
			return
		}
		to = parsed
	}
	if to.Before(from) {
		h.BadRequest(c, "to must not be before from")
		return
	}

	docs, err := h.erp.ListOrderDocuments(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// RecentLogs lists the most recent sync log entries
func (h *SyncHandler) RecentLogs(c *gin.Context) {
	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			h.BadRequest(c, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	logs, err := h.syncLogs.FindRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

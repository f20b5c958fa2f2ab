package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
)

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db  *persistence.Database
	erp integration.ERPGateway
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, erp integration.ERPGateway) *SystemHandler {
	return &SystemHandler{db: db, erp: erp}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/health/erp", h.ERPHealth)
}

// Health reports process liveness and dependency state. The ERP check
// only reports configuration, not reachability; a slow ERP must not
// take the health endpoint down with it.
func (h *SystemHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	healthy := true
	if err := h.db.Ping(); err != nil {
		dbStatus = "unreachable"
		healthy = false
	}

	erpStatus := "configured"
	if h.erp == nil || !h.erp.IsConfigured() {
		erpStatus = "not_configured"
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":   overall,
		"database": dbStatus,
		"erp":      erpStatus,
	})
}

// ERPHealth actively checks the ERP webservice. Kept off the main
// health endpoint so orchestrator checks never block on a slow ERP.
func (h *SystemHandler) ERPHealth(c *gin.Context) {
	if h.erp == nil || !h.erp.IsConfigured() {
		c.JSON(http.StatusOK, gin.H{"erp": "not_configured"})
		return
	}
	if err := h.erp.TestConnection(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"erp":   "unreachable",
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"erp": "ok"})
}

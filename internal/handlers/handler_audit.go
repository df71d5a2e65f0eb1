package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finacct/general_ledger_app/internal/core/domain"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/middleware"
)

// auditHandler handles HTTP reads of the audit log.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(auditService portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: auditService}
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit")
	audit.GET("", h.listRecent)
	audit.GET("/:entityType/:entityID", h.listByEntity)
}

func (h *auditHandler) listRecent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToAuditEntryResponses(entries)})
}

func (h *auditHandler) listByEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entityType := domain.AuditEntityType(c.Param("entityType"))
	switch entityType {
	case domain.EntityTransaction, domain.EntityFiscalYear, domain.EntityFiscalPeriod:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown entity type"})
		return
	}

	entries, err := h.auditService.ListByEntity(c.Request.Context(), entityType, c.Param("entityID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.ToAuditEntryResponses(entries)})
}

package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes registers the audit trail route; admin only.
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", middleware.RequireAdmin(), h.ListEntries)
}

// ListEntries returns the most recent audit trail entries, newest first.
func (h *AuditHandler) ListEntries(c *gin.Context) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := h.auditService.ListEntries(c.Request.Context(), p, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, dto.FromModelToAuditLogResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

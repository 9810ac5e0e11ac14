// File: internal/audit/handler.go
package audit

import (
	"strconv"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler exposes the caller's own audit trail.
type Handler struct {
	reader Reader
	logger *zap.Logger
}

// NewHandler creates a new audit handler.
func NewHandler(reader Reader, logger *zap.Logger) *Handler {
	return &Handler{reader: reader, logger: logger}
}

// RegisterRoutes sets up the audit log routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/audit-logs")
	group.Use(authMW)
	{
		group.GET("", h.history)
	}
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	entries, err := h.reader.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to fetch audit history", zap.Error(err), zap.String("userID", userID.String()))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Failed to fetch audit log."))
		return
	}
	common.RespondOK(c, "Audit log retrieved successfully.", entries)
}

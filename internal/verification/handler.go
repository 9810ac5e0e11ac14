// File: internal/verification/handler.go
package verification

import (
	"errors"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler holds dependencies for verification endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new verification handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up verification routes. Submission needs any
// authenticated caller; the queue and decisions are admin-only.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	group := router.Group("/verifications")
	group.Use(authMW)
	{
		group.POST("", h.submit)
		group.GET("", adminMW, h.listAll)
		group.PATCH("/:id/status", adminMW, h.updateStatus)
	}
}

func (h *Handler) submit(c *gin.Context) {
	sellerID := middleware.GetUserIDFromContext(c)
	if sellerID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Verification submit: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	v, err := h.service.Submit(c.Request.Context(), sellerID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Verification submitted successfully.", ToResponse(v))
}

func (h *Handler) listAll(c *gin.Context) {
	var q common.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	records, pagination, err := h.service.ListAll(c.Request.Context(), q)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Verifications retrieved successfully.", records, pagination)
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid verification ID format."))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	v, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Verification status updated.", ToResponse(v))
}

// File: internal/user/handler.go
package user

import (
	"errors"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for user operations. All of them require
// an authenticated caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	userGroup := router.Group("/users")
	userGroup.Use(authMW)
	{
		userGroup.GET("/profile", h.getProfile)
		userGroup.POST("/upgrade", h.upgradeRole)
		userGroup.POST("/verify-aadhar", h.verifyAadhar)
		userGroup.POST("/toggle-identity-disclosure", h.toggleIdentityDisclosure)
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		h.logger.Error("User ID not found in context for /profile", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	usr, err := h.service.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User profile retrieved successfully.", ToUserResponse(usr))
}

func (h *Handler) upgradeRole(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req UpgradeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Role upgrade: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.service.UpgradeRole(c.Request.Context(), userID, req.TargetRole, req.VerificationData)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Role upgraded successfully.", ToUserResponse(usr))
}

func (h *Handler) verifyAadhar(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req VerifyAadharRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, err := h.service.VerifyAadhar(c.Request.Context(), userID, req.AadharNumber)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Identity verified successfully.", ToUserResponse(usr))
}

func (h *Handler) toggleIdentityDisclosure(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	usr, err := h.service.ToggleIdentityDisclosure(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Identity disclosure preference updated.", ToUserResponse(usr))
}

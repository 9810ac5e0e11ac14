// File: internal/auth/handler.go
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/firebase"
	"bhoomi_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler holds dependencies for authentication endpoints.
type Handler struct {
	cfg          *config.Config
	userService  user.Service
	oauthService OAuthService
	firebaseSvc  *firebase.Service
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(
	cfg *config.Config,
	userService user.Service,
	oauthService OAuthService,
	firebaseSvc *firebase.Service,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		cfg:          cfg,
		userService:  userService,
		oauthService: oauthService,
		firebaseSvc:  firebaseSvc,
		logger:       logger,
	}
}

// RegisterRoutes sets up the public authentication routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/google", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)
		authGroup.POST("/firebase-login", h.firebaseLogin)
	}
}

func (h *Handler) register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Registration: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, tokenResponse, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "User registered successfully.", gin.H{
		"user":  user.ToUserResponse(usr),
		"token": tokenResponse,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	usr, tokenResponse, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Login successful.", gin.H{
		"user":  user.ToUserResponse(usr),
		"token": tokenResponse,
	})
}

func (h *Handler) googleLogin(c *gin.Context) {
	loginURL, err := h.oauthService.GetGoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

// googleCallback completes the OAuth flow and hands the browser back to the
// frontend with the app token in the query string.
func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing authorization code."))
		return
	}

	usr, tokenResponse, err := h.oauthService.HandleGoogleCallback(c, code, state)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	redirect := fmt.Sprintf("%s?token=%s&userId=%s",
		h.cfg.FrontendCallbackURL,
		url.QueryEscape(tokenResponse.AccessToken),
		url.QueryEscape(usr.ID.String()))
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

// firebaseLogin exchanges a Firebase ID token for an app token. When the
// Admin SDK is unavailable or verification fails outside production, the
// client-asserted profile from the request body is trusted instead.
func (h *Handler) firebaseLogin(c *gin.Context) {
	var req FirebaseLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	profile := user.ExternalProfile{Provider: "firebase"}

	if h.firebaseSvc.IsEnabled() {
		token, err := h.firebaseSvc.VerifyIDToken(c.Request.Context(), req.Token)
		if err == nil {
			profile.SubjectID = token.UID
			if email, ok := token.Claims["email"].(string); ok {
				profile.Email = strings.ToLower(email)
			}
			if name, ok := token.Claims["name"].(string); ok {
				profile.Name = name
			}
		} else if h.cfg.IsProduction() {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid Firebase token."))
			return
		} else {
			h.logger.Warn("Firebase verification failed; falling back to client profile in non-production", zap.Error(err))
		}
	} else if h.cfg.IsProduction() {
		common.RespondWithError(c, common.ErrServiceUnavailable.WithDetails("Firebase verification is not configured."))
		return
	}

	if profile.SubjectID == "" {
		profile.SubjectID = req.GoogleID
		profile.Email = strings.ToLower(req.Email)
		profile.Name = req.Name
	}

	usr, tokenResponse, err := h.userService.FindOrCreateExternalUser(c.Request.Context(), profile)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Login successful.", gin.H{
		"user":  user.ToUserResponse(usr),
		"token": tokenResponse,
	})
}

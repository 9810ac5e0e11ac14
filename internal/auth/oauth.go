// File: internal/auth/oauth.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/platform/crypto"
	"bhoomi_backend/internal/shared"
	"bhoomi_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookieName  = "bhoomi_oauth_state"
	oauthStateCookieAge   = 10 * 60 // seconds
	oauthStateTokenLength = 32
)

// googleUserInfoURL is a variable so tests can point it at a fake server.
var googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// OAuthService handles the Google OAuth authorization-code flow.
type OAuthService interface {
	GetGoogleLoginURL(c *gin.Context) (string, error)
	HandleGoogleCallback(c *gin.Context, code, state string) (*user.User, *shared.TokenResponse, error)
}

type oauthService struct {
	cfg          *config.Config
	userService  user.Service
	logger       *zap.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(cfg *config.Config, userService user.Service, logger *zap.Logger) OAuthService {
	return &oauthService{
		cfg:         cfg,
		userService: userService,
		logger:      logger.Named("OAuthService"),
	}
}

func googleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GetGoogleLoginURL generates the URL for Google OAuth login and stores the
// CSRF state in a cookie.
func (s *oauthService) GetGoogleLoginURL(c *gin.Context) (string, error) {
	state, err := crypto.GenerateSecureRandomString(oauthStateTokenLength)
	if err != nil {
		s.logger.Error("Failed to generate OAuth state", zap.Error(err))
		return "", common.ErrInternalServer.WithDetails("Could not initiate Google login.")
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   oauthStateCookieAge,
		Secure:   s.cfg.IsProduction(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return googleOAuthConfig(s.cfg).AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// HandleGoogleCallback verifies the state, exchanges the code, fetches the
// Google profile and resolves it to a local user with an app token.
func (s *oauthService) HandleGoogleCallback(c *gin.Context, code, state string) (*user.User, *shared.TokenResponse, error) {
	storedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || storedState == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("Invalid session or missing OAuth state.")
	}
	// One-shot cookie.
	http.SetCookie(c.Writer, &http.Cookie{Name: oauthStateCookieName, Value: "", Path: "/", MaxAge: -1})
	if state != storedState {
		s.logger.Warn("Google OAuth state mismatch")
		return nil, nil, common.ErrBadRequest.WithDetails("OAuth state mismatch. Possible CSRF attack.")
	}

	googleCfg := googleOAuthConfig(s.cfg)
	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, http.DefaultClient)

	token, err := googleCfg.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("Failed to exchange Google auth code for token", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not exchange Google auth code.")
	}

	client := googleCfg.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		s.logger.Error("Failed to fetch user info from Google", zap.Error(err))
		return nil, nil, common.ErrServiceUnavailable.WithDetails("Could not fetch user info from Google.")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, common.ErrServiceUnavailable.WithDetails(fmt.Sprintf("Google returned status %d for user info.", resp.StatusCode))
	}

	var googleUser struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		s.logger.Error("Failed to decode Google user info", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Could not process Google user information.")
	}

	return s.userService.FindOrCreateExternalUser(c.Request.Context(), user.ExternalProfile{
		Provider:  "google",
		SubjectID: googleUser.Sub,
		Email:     strings.ToLower(googleUser.Email),
		Name:      googleUser.Name,
	})
}

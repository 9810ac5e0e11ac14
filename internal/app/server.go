// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bhoomi_backend/internal/audit"
	"bhoomi_backend/internal/auth"
	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/jobs"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/middleware"
	"bhoomi_backend/internal/platform/elasticsearch"
	"bhoomi_backend/internal/proposal"
	"bhoomi_backend/internal/shared"
	"bhoomi_backend/internal/user"
	"bhoomi_backend/internal/verification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	authHandler         *auth.Handler
	userHandler         *user.Handler
	listingHandler      *listing.Handler
	verificationHandler *verification.Handler
	proposalHandler     *proposal.Handler
	auditHandler        *audit.Handler

	staleVerificationJob *jobs.StaleVerificationJob

	authMW      gin.HandlerFunc
	adminRoleMW gin.HandlerFunc

	// Exposed for startup tasks in cmd/server.
	ESClient  *elasticsearch.ESClientWrapper
	AppLogger *zap.Logger
}

// NewServer creates a new instance of the application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	listingHandler *listing.Handler,
	verificationHandler *verification.Handler,
	proposalHandler *proposal.Handler,
	auditHandler *audit.Handler,
	staleVerificationJob *jobs.StaleVerificationJob,
	tokenService shared.TokenService,
	userResolver shared.UserResolver,
	esClient *elasticsearch.ESClientWrapper,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokenService, userResolver, logger.Named("AuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	healthCheck := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Bhoomi API is healthy!"})
	}
	router.GET("/health", healthCheck)

	api := router.Group("/api")
	api.GET("/health", healthCheck)

	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api, authMW)
	listingHandler.RegisterRoutes(api, authMW)
	verificationHandler.RegisterRoutes(api, authMW, adminRoleMW)
	proposalHandler.RegisterRoutes(api, authMW)
	auditHandler.RegisterRoutes(api, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:           httpServer,
		router:               router,
		cfg:                  cfg,
		logger:               logger,
		authHandler:          authHandler,
		userHandler:          userHandler,
		listingHandler:       listingHandler,
		verificationHandler:  verificationHandler,
		proposalHandler:      proposalHandler,
		auditHandler:         auditHandler,
		staleVerificationJob: staleVerificationJob,
		authMW:               authMW,
		adminRoleMW:          adminRoleMW,
		ESClient:             esClient,
		AppLogger:            logger,
	}, nil
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	if s.staleVerificationJob != nil {
		if err := s.staleVerificationJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start stale verification job", zap.Error(err))
		}
	} else {
		s.logger.Info("Stale verification job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.staleVerificationJob != nil {
		s.staleVerificationJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}

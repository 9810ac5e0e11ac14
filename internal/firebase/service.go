package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"bhoomi_backend/internal/config"
)

// Service wraps the Firebase Admin SDK auth client. A nil *Service is a
// valid "firebase disabled" state; callers must check IsEnabled.
type Service struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewService initializes the Firebase Admin SDK when a service account key
// is configured. When the path is empty it returns (nil, nil) and the
// firebase-login endpoint falls back to client-asserted profiles outside
// production.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Info("Firebase service account key path not configured; Firebase verification disabled.")
		return nil, nil
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var app *firebase.App
	var err error
	if cfg.FirebaseProjectID != "" {
		conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
		app, err = firebase.NewApp(context.Background(), conf, opt)
	} else {
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{authClient: authClient, logger: logger}, nil
}

// IsEnabled reports whether token verification is available.
func (s *Service) IsEnabled() bool {
	return s != nil && s.authClient != nil
}

// VerifyIDToken verifies a Firebase ID token and returns its claims.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("firebase verification is not configured")
	}
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}
	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("error verifying ID token: %w", err)
	}
	return token, nil
}

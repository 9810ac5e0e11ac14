// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"bhoomi_backend/internal/audit"
	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var aadharPattern = regexp.MustCompile(`^\d{12}$`)

// ExternalProfile carries the identity asserted by an external provider
// (Google OAuth or Firebase) after verification.
type ExternalProfile struct {
	Provider  string
	SubjectID string
	Email     string
	Name      string
}

// Service defines user-related business logic consumed by the auth and user
// handlers.
type Service interface {
	shared.UserResolver

	Register(ctx context.Context, req RegisterRequest) (*User, *shared.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*User, *shared.TokenResponse, error)
	// FindOrCreateExternalUser resolves a user by provider subject id or
	// email, creating or linking as needed, and issues an app token.
	FindOrCreateExternalUser(ctx context.Context, profile ExternalProfile) (*User, *shared.TokenResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpgradeRole(ctx context.Context, id uuid.UUID, targetRole string, verificationData map[string]interface{}) (*User, error)
	VerifyAadhar(ctx context.Context, id uuid.UUID, aadharNumber string) (*User, error)
	ToggleIdentityDisclosure(ctx context.Context, id uuid.UUID) (*User, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo         Repository
	tokenService shared.TokenService
	auditor      audit.Recorder
	logger       *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(
	repo Repository,
	tokenService shared.TokenService,
	auditor audit.Recorder,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:         repo,
		tokenService: tokenService,
		auditor:      auditor,
		logger:       logger,
	}
}

// Register creates a new user with a bcrypt-hashed password. Email reuse is
// a conflict.
func (s *ServiceImplementation) Register(ctx context.Context, req RegisterRequest) (*User, *shared.TokenResponse, error) {
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, nil, common.ErrConflict.WithDetails("User with this email already exists.")
	}
	if apiErr, ok := common.IsAPIError(err); !ok || apiErr.StatusCode != common.ErrNotFound.StatusCode {
		return nil, nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	hashedPassword, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = common.RoleGuest
	}

	email := req.Email
	dbUser := &User{
		Email:        &email,
		PasswordHash: &hashedPassword,
		Role:         role,
	}
	if req.Name != "" {
		dbUser.Name = &req.Name
	}
	if req.Phone != "" {
		dbUser.Phone = &req.Phone
	}

	if err := s.repo.Create(ctx, dbUser); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, nil, apiErr
		}
		s.logger.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokenResponse, err := s.issueToken(dbUser)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User registered", zap.String("userID", dbUser.ID.String()))
	return dbUser, tokenResponse, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *ServiceImplementation) Login(ctx context.Context, email, password string) (*User, *shared.TokenResponse, error) {
	dbUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == common.ErrNotFound.StatusCode {
			return nil, nil, common.ErrUnauthorized.WithDetails("Invalid credentials.")
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Login failed due to an internal error.")
	}

	if dbUser.PasswordHash == nil || *dbUser.PasswordHash == "" {
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid credentials.")
	}
	if !common.CheckPasswordHash(password, *dbUser.PasswordHash) {
		s.logger.Warn("Invalid password attempt", zap.String("userID", dbUser.ID.String()))
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid credentials.")
	}

	now := time.Now()
	dbUser.LastLoginAt = &now
	if err := s.repo.Update(ctx, dbUser); err != nil {
		// Not critical for the login itself.
		s.logger.Error("Failed to update last login time", zap.Error(err), zap.String("userID", dbUser.ID.String()))
	}

	tokenResponse, err := s.issueToken(dbUser)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User logged in", zap.String("userID", dbUser.ID.String()))
	return dbUser, tokenResponse, nil
}

func (s *ServiceImplementation) FindOrCreateExternalUser(ctx context.Context, profile ExternalProfile) (*User, *shared.TokenResponse, error) {
	if profile.Email == "" && profile.SubjectID == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("External profile carries neither email nor subject id.")
	}

	var dbUser *User
	if profile.SubjectID != "" {
		found, err := s.repo.FindByGoogleID(ctx, profile.SubjectID)
		if err == nil {
			dbUser = found
		} else if !isNotFound(err) {
			return nil, nil, err
		}
	}
	if dbUser == nil && profile.Email != "" {
		found, err := s.repo.FindByEmail(ctx, profile.Email)
		if err == nil {
			dbUser = found
		} else if !isNotFound(err) {
			return nil, nil, err
		}
	}

	switch {
	case dbUser == nil:
		dbUser = &User{Role: common.RoleGuest}
		if profile.Email != "" {
			email := profile.Email
			dbUser.Email = &email
		}
		if profile.Name != "" {
			name := profile.Name
			dbUser.Name = &name
		}
		if profile.SubjectID != "" {
			subject := profile.SubjectID
			dbUser.GoogleID = &subject
		}
		if err := s.repo.Create(ctx, dbUser); err != nil {
			return nil, nil, err
		}
		s.logger.Info("Created user from external identity",
			zap.String("provider", profile.Provider),
			zap.String("userID", dbUser.ID.String()))
	case dbUser.GoogleID == nil && profile.SubjectID != "":
		// Link the external subject to the existing email account.
		subject := profile.SubjectID
		dbUser.GoogleID = &subject
		if err := s.repo.Update(ctx, dbUser); err != nil {
			return nil, nil, err
		}
		s.logger.Info("Linked external identity to existing user",
			zap.String("provider", profile.Provider),
			zap.String("userID", dbUser.ID.String()))
	}

	now := time.Now()
	dbUser.LastLoginAt = &now
	if err := s.repo.Update(ctx, dbUser); err != nil {
		s.logger.Error("Failed to update last login time", zap.Error(err), zap.String("userID", dbUser.ID.String()))
	}

	tokenResponse, err := s.issueToken(dbUser)
	if err != nil {
		return nil, nil, err
	}
	return dbUser, tokenResponse, nil
}

func (s *ServiceImplementation) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// UserExists implements shared.UserResolver for the auth middleware.
func (s *ServiceImplementation) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// UpgradeRole sets the caller's role to the requested target and writes an
// audit entry. Eligibility review is out of scope; the handler's binding
// already restricts targets to non-admin roles.
func (s *ServiceImplementation) UpgradeRole(ctx context.Context, id uuid.UUID, targetRole string, verificationData map[string]interface{}) (*User, error) {
	if !common.ValidRole(targetRole) || targetRole == common.RoleAdmin {
		return nil, common.ErrBadRequest.WithDetails("Unsupported target role.")
	}

	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dbUser.Role = targetRole
	if err := s.repo.Update(ctx, dbUser); err != nil {
		return nil, err
	}

	if err := s.auditor.Record(ctx, dbUser.ID, audit.ActionRoleUpgradePrefix+targetRole, verificationData); err != nil {
		s.logger.Warn("Audit write failed for role upgrade", zap.Error(err))
	}

	s.logger.Info("User role upgraded",
		zap.String("userID", dbUser.ID.String()),
		zap.String("role", targetRole))
	return dbUser, nil
}

// VerifyAadhar marks the caller's aadhar number as verified. The number must
// be 12 digits, the caller must not already be verified, and a verified
// number is unique across users.
func (s *ServiceImplementation) VerifyAadhar(ctx context.Context, id uuid.UUID, aadharNumber string) (*User, error) {
	if !aadharPattern.MatchString(aadharNumber) {
		return nil, common.ErrBadRequest.WithDetails("Invalid Aadhar number. Must be 12 digits.")
	}

	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dbUser.IsAadharVerified {
		return nil, common.ErrBadRequest.WithDetails("Identity verification already completed.")
	}

	_, err = s.repo.FindVerifiedAadhar(ctx, aadharNumber, id)
	if err == nil {
		return nil, common.ErrBadRequest.WithDetails("This Aadhar number is already linked to another account.")
	}
	if !isNotFound(err) {
		return nil, err
	}

	dbUser.AadharNumber = &aadharNumber
	dbUser.IsAadharVerified = true
	if err := s.repo.Update(ctx, dbUser); err != nil {
		return nil, err
	}

	// Only the last four digits ever reach the audit trail.
	if err := s.auditor.Record(ctx, dbUser.ID, audit.ActionAadharVerified, map[string]interface{}{
		"aadhar_last4": aadharNumber[len(aadharNumber)-4:],
	}); err != nil {
		s.logger.Warn("Audit write failed for aadhar verification", zap.Error(err))
	}

	s.logger.Info("Aadhar verified", zap.String("userID", dbUser.ID.String()))
	return dbUser, nil
}

// ToggleIdentityDisclosure flips whether the user's contact details are shown
// on their listings. Requires completed aadhar verification.
func (s *ServiceImplementation) ToggleIdentityDisclosure(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !dbUser.IsAadharVerified {
		return nil, common.ErrBadRequest.WithDetails("You must verify your identity first.")
	}

	dbUser.ShowIdentity = !dbUser.ShowIdentity
	if err := s.repo.Update(ctx, dbUser); err != nil {
		return nil, err
	}
	return dbUser, nil
}

func (s *ServiceImplementation) issueToken(u *User) (*shared.TokenResponse, error) {
	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(u)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err), zap.String("userID", u.ID.String()))
		return nil, common.ErrInternalServer.WithDetails("Could not generate access token.")
	}
	return &shared.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := common.IsAPIError(err); ok {
		return apiErr.StatusCode == common.ErrNotFound.StatusCode
	}
	return errors.Is(err, common.ErrNotFound)
}

package user

import (
	"context"
	"testing"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindVerifiedAadhar(ctx context.Context, aadharNumber string, excludeID uuid.UUID) (*User, error) {
	args := m.Called(ctx, aadharNumber, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

// MockRecorder is a mock type for audit.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, userID uuid.UUID, action string, details map[string]interface{}) error {
	args := m.Called(ctx, userID, action, details)
	return args.Error(0)
}

// stubTokenService issues fixed tokens for tests.
type stubTokenService struct{}

func (s *stubTokenService) GenerateAccessToken(userData shared.UserDataForToken) (string, time.Time, error) {
	return "test-token", time.Now().Add(time.Hour), nil
}

func (s *stubTokenService) ValidateToken(tokenString string) (*shared.Claims, error) {
	return nil, common.ErrUnauthorized
}

func newTestService(repo Repository, recorder *MockRecorder) *ServiceImplementation {
	return NewService(repo, &stubTokenService{}, recorder, zap.NewNop())
}

func existingUser(verified bool) *User {
	email := "seller@example.com"
	u := &User{Email: &email, Role: common.RoleSeller, IsAadharVerified: verified}
	u.ID = uuid.New()
	return u
}

func TestRegisterConflictOnDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	repo.On("FindByEmail", mock.Anything, "taken@example.com").Return(existingUser(false), nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret-password",
	})
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	repo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, common.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	usr, token, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	assert.Equal(t, common.RoleGuest, usr.Role)
	assert.NotNil(t, usr.PasswordHash)
	assert.NotEqual(t, "secret-password", *usr.PasswordHash)
	assert.True(t, common.CheckPasswordHash("secret-password", *usr.PasswordHash))
	assert.Equal(t, "test-token", token.AccessToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	hash, err := common.HashPassword("right-password")
	assert.NoError(t, err)
	u := existingUser(false)
	u.PasswordHash = &hash
	repo.On("FindByEmail", mock.Anything, "seller@example.com").Return(u, nil)

	_, _, err = svc.Login(context.Background(), "seller@example.com", "wrong-password")
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrUnauthorized.StatusCode, apiErr.StatusCode)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, common.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrUnauthorized.StatusCode, apiErr.StatusCode)
}

func TestUpgradeRoleRecordsAudit(t *testing.T) {
	repo := new(MockUserRepository)
	recorder := new(MockRecorder)
	svc := newTestService(repo, recorder)

	u := existingUser(false)
	u.Role = common.RoleGuest
	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("Update", mock.Anything, u).Return(nil)
	recorder.On("Record", mock.Anything, u.ID, "ROLE_UPGRADE_SELLER", mock.Anything).Return(nil)

	got, err := svc.UpgradeRole(context.Background(), u.ID, common.RoleSeller, map[string]interface{}{"pan": "on-file"})
	assert.NoError(t, err)
	assert.Equal(t, common.RoleSeller, got.Role)
	recorder.AssertCalled(t, "Record", mock.Anything, u.ID, "ROLE_UPGRADE_SELLER", mock.Anything)
}

func TestUpgradeRoleRejectsAdminTarget(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	_, err := svc.UpgradeRole(context.Background(), uuid.New(), common.RoleAdmin, nil)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}

func TestVerifyAadharRejectsMalformedNumber(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	for _, bad := range []string{"12345", "12345678901a", "1234567890123", ""} {
		_, err := svc.VerifyAadhar(context.Background(), uuid.New(), bad)
		apiErr, ok := common.IsAPIError(err)
		assert.True(t, ok, "input %q", bad)
		assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode, "input %q", bad)
	}
}

func TestVerifyAadharRejectsAlreadyVerifiedCaller(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	u := existingUser(true)
	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)

	_, err := svc.VerifyAadhar(context.Background(), u.ID, "123456789012")
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}

func TestVerifyAadharRejectsNumberVerifiedElsewhere(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	u := existingUser(false)
	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("FindVerifiedAadhar", mock.Anything, "123456789012", u.ID).Return(existingUser(true), nil)

	_, err := svc.VerifyAadhar(context.Background(), u.ID, "123456789012")
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}

func TestVerifyAadharAuditsLastFourOnly(t *testing.T) {
	repo := new(MockUserRepository)
	recorder := new(MockRecorder)
	svc := newTestService(repo, recorder)

	u := existingUser(false)
	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("FindVerifiedAadhar", mock.Anything, "123456789012", u.ID).Return(nil, common.ErrNotFound)
	repo.On("Update", mock.Anything, u).Return(nil)
	recorder.On("Record", mock.Anything, u.ID, "AADHAR_VERIFICATION_SUCCESS",
		mock.MatchedBy(func(details map[string]interface{}) bool {
			return details["aadhar_last4"] == "9012"
		})).Return(nil)

	got, err := svc.VerifyAadhar(context.Background(), u.ID, "123456789012")
	assert.NoError(t, err)
	assert.True(t, got.IsAadharVerified)
	recorder.AssertExpectations(t)
}

func TestToggleIdentityDisclosureRequiresVerification(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	u := existingUser(false)
	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)

	_, err := svc.ToggleIdentityDisclosure(context.Background(), u.ID)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}

func TestToggleIdentityDisclosureFlips(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	u := existingUser(true)
	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("Update", mock.Anything, u).Return(nil)

	got, err := svc.ToggleIdentityDisclosure(context.Background(), u.ID)
	assert.NoError(t, err)
	assert.True(t, got.ShowIdentity)
}

func TestFindOrCreateExternalUserLinksByEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(repo, new(MockRecorder))

	u := existingUser(false)
	repo.On("FindByGoogleID", mock.Anything, "google-sub-1").Return(nil, common.ErrNotFound)
	repo.On("FindByEmail", mock.Anything, "seller@example.com").Return(u, nil)
	repo.On("Update", mock.Anything, u).Return(nil)

	got, token, err := svc.FindOrCreateExternalUser(context.Background(), ExternalProfile{
		Provider:  "google",
		SubjectID: "google-sub-1",
		Email:     "seller@example.com",
	})
	assert.NoError(t, err)
	assert.NotNil(t, got.GoogleID)
	assert.Equal(t, "google-sub-1", *got.GoogleID)
	assert.Equal(t, "test-token", token.AccessToken)
}

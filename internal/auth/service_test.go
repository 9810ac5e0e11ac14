package auth

import (
	"testing"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:   "unit-test-secret",
		JWTTokenExpiry: 24 * time.Hour,
	}
}

func tokenUser() *user.User {
	email := "buyer@example.com"
	u := &user.User{Email: &email, Role: common.RoleBuyer}
	u.ID = uuid.New()
	return u
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())
	u := tokenUser()

	token, expiresAt, err := svc.GenerateAccessToken(u)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, common.RoleBuyer, claims.Role)
	assert.Equal(t, "bhoomi_backend", claims.Issuer)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())
	token, _, err := svc.GenerateAccessToken(tokenUser())
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(testConfig(), zap.NewNop())
	token, _, err := issuer.GenerateAccessToken(tokenUser())
	assert.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecretKey = "a-different-secret"
	verifier := NewJWTService(otherCfg, zap.NewNop())

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testConfig(), zap.NewNop())
	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

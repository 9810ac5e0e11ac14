package user

import (
	"context"
	"testing"

	"bhoomi_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestCreateNormalizesEmailAndGeneratesID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)

	email := "MixedCase@Example.COM"
	u := &User{Email: &email}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEqual(t, uuid.Nil, u.ID)

	found, err := repo.FindByEmail(context.Background(), "mixedcase@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestCreateDuplicateEmailConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)

	email := "dup@example.com"
	first := &User{Email: &email}
	require.NoError(t, repo.Create(context.Background(), first))

	emailCopy := "dup@example.com"
	second := &User{Email: &emailCopy}
	err := repo.Create(context.Background(), second)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestFindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)

	email := "exists@example.com"
	u := &User{Email: &email}
	require.NoError(t, repo.Create(context.Background(), u))

	exists, err := repo.Exists(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFindVerifiedAadharExcludesCaller(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)

	aadhar := "123456789012"
	emailA := "a@example.com"
	owner := &User{Email: &emailA, AadharNumber: &aadhar, IsAadharVerified: true}
	require.NoError(t, repo.Create(context.Background(), owner))

	// The owner's own record is excluded from the duplicate scan.
	_, err := repo.FindVerifiedAadhar(context.Background(), aadhar, owner.ID)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)

	// Any other caller collides with it.
	found, err := repo.FindVerifiedAadhar(context.Background(), aadhar, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, owner.ID, found.ID)
}

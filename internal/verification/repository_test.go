package verification

import (
	"context"
	"testing"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/user"

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
	require.NoError(t, db.AutoMigrate(&user.User{}, &listing.Listing{}, &Verification{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedListingWithSeller(t *testing.T, db *gorm.DB) (*listing.Listing, *user.User) {
	t.Helper()
	email := "seller-" + uuid.NewString() + "@example.com"
	seller := &user.User{Email: &email, Role: common.RoleSeller}
	require.NoError(t, db.Create(seller).Error)

	l := &listing.Listing{
		Title:    "Reviewable Plot",
		Slug:     "reviewable-plot-" + uuid.NewString()[:8],
		Category: listing.CategoryPrivate,
		Purpose:  listing.PurposeSale,
		Location: "Test Location",
		State:    "Karnataka",
		Area:     1000,
		AreaUnit: "sq ft",
		Price:    1000000,
		Currency: "INR",
		SellerID: seller.ID,
	}
	require.NoError(t, db.Create(l).Error)
	return l, seller
}

func TestReviewVerifiedCascadesListingBadge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	l, seller := seedListingWithSeller(t, db)

	v := &Verification{
		ListingID: l.ID,
		SellerID:  seller.ID,
		Documents: "deed.pdf",
		Status:    StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), v))

	now := time.Now()
	v.Status = StatusVerified
	v.ReviewedAt = &now
	require.NoError(t, repo.Review(context.Background(), v))

	var freshListing listing.Listing
	require.NoError(t, db.First(&freshListing, "id = ?", l.ID).Error)
	assert.True(t, freshListing.VerifiedBadge)

	var freshVerification Verification
	require.NoError(t, db.First(&freshVerification, "id = ?", v.ID).Error)
	assert.Equal(t, StatusVerified, freshVerification.Status)
}

func TestReviewRejectedLeavesBadgeUntouched(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	l, seller := seedListingWithSeller(t, db)

	v := &Verification{
		ListingID: l.ID,
		SellerID:  seller.ID,
		Documents: "deed.pdf",
		Status:    StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), v))

	now := time.Now()
	v.Status = StatusRejected
	v.ReviewedAt = &now
	require.NoError(t, repo.Review(context.Background(), v))

	var freshListing listing.Listing
	require.NoError(t, db.First(&freshListing, "id = ?", l.ID).Error)
	assert.False(t, freshListing.VerifiedBadge)
}

func TestFindAllNewestFirstWithAssociations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	l, seller := seedListingWithSeller(t, db)

	older := &Verification{ListingID: l.ID, SellerID: seller.ID, Documents: "a.pdf", Status: StatusPending}
	require.NoError(t, repo.Create(context.Background(), older))
	require.NoError(t, db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &Verification{ListingID: l.ID, SellerID: seller.ID, Documents: "b.pdf", Status: StatusPending}
	require.NoError(t, repo.Create(context.Background(), newer))

	got, total, err := repo.FindAll(context.Background(), 0, 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, newer.ID, got[0].ID)
	require.NotNil(t, got[0].Listing)
	require.NotNil(t, got[0].Seller)
	assert.Equal(t, l.ID, got[0].Listing.ID)
	assert.Equal(t, seller.ID, got[0].Seller.ID)
}

func TestFindAllPagesWithTotal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	l, seller := seedListingWithSeller(t, db)

	for i := 0; i < 3; i++ {
		v := &Verification{ListingID: l.ID, SellerID: seller.ID, Documents: "a.pdf", Status: StatusPending}
		require.NoError(t, repo.Create(context.Background(), v))
	}

	first, total, err := repo.FindAll(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, int64(3), total)

	second, total, err := repo.FindAll(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, int64(3), total)
}

func TestFindStalePending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	l, seller := seedListingWithSeller(t, db)

	stale := &Verification{ListingID: l.ID, SellerID: seller.ID, Documents: "a.pdf", Status: StatusPending}
	require.NoError(t, repo.Create(context.Background(), stale))
	require.NoError(t, db.Model(stale).UpdateColumn("created_at", time.Now().Add(-10*24*time.Hour)).Error)

	fresh := &Verification{ListingID: l.ID, SellerID: seller.ID, Documents: "b.pdf", Status: StatusPending}
	require.NoError(t, repo.Create(context.Background(), fresh))

	got, err := repo.FindStalePending(context.Background(), time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stale.ID, got[0].ID)
}

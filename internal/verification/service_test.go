package verification

import (
	"context"
	"testing"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockVerificationRepository is a mock type for verification.Repository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, v *Verification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*Verification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Verification), args.Error(1)
}

func (m *MockVerificationRepository) FindAll(ctx context.Context, offset, limit int) ([]Verification, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Verification), args.Get(1).(int64), args.Error(2)
}

func (m *MockVerificationRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]Verification, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Verification), args.Error(1)
}

func (m *MockVerificationRepository) Review(ctx context.Context, v *Verification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockListingRepository is a mock type for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) List(ctx context.Context, query listing.ListQuery) ([]listing.Listing, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func (m *MockListingRepository) IncrementViewsAndGet(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}

func (m *MockListingRepository) ListAll(ctx context.Context) ([]listing.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Listing), args.Error(1)
}

// MockCacheInvalidator is a mock type for ListingCacheInvalidator
type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func pendingVerification() *Verification {
	v := &Verification{
		ListingID: uuid.New(),
		SellerID:  uuid.New(),
		Documents: "deed.pdf,khata.pdf",
		Status:    StatusPending,
	}
	v.ID = uuid.New()
	return v
}

func TestSubmitRequiresExistingListing(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	listingID := uuid.New()
	listingRepo.On("FindByID", mock.Anything, listingID).Return(nil, common.ErrNotFound.WithDetails("Listing not found."))

	_, err := svc.Submit(context.Background(), uuid.New(), SubmitRequest{
		ListingID: listingID,
		Documents: []string{"deed.pdf"},
	})
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestSubmitFlattensDocumentsAndStartsPending(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	l := &listing.Listing{Title: "Plot"}
	l.ID = uuid.New()
	listingRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*verification.Verification")).Return(nil)

	v, err := svc.Submit(context.Background(), uuid.New(), SubmitRequest{
		ListingID: l.ID,
		Documents: []string{"deed.pdf", " khata.pdf ", ""},
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, v.Status)
	assert.Equal(t, "deed.pdf,khata.pdf", v.Documents)
}

func TestListAllPaginates(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	records := []Verification{*pendingVerification(), *pendingVerification()}
	repo.On("FindAll", mock.Anything, 2, 2).Return(records, int64(5), nil)

	responses, pagination, err := svc.ListAll(context.Background(), common.PaginationQuery{Page: 2, PageSize: 2})
	assert.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(5), pagination.TotalItems)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.True(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
}

func TestListAllDefaultsPageAndSize(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	repo.On("FindAll", mock.Anything, 0, 20).Return([]Verification{}, int64(0), nil)

	_, pagination, err := svc.ListAll(context.Background(), common.PaginationQuery{})
	assert.NoError(t, err)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 20, pagination.PageSize)
	repo.AssertCalled(t, "FindAll", mock.Anything, 0, 20)
}

func TestUpdateStatusVerifiedSetsReviewFields(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	v := pendingVerification()
	repo.On("FindByID", mock.Anything, v.ID).Return(v, nil)
	repo.On("Review", mock.Anything, v).Return(nil)

	got, err := svc.UpdateStatus(context.Background(), v.ID, UpdateStatusRequest{
		Status:      StatusVerified,
		AdminReview: "Documents check out.",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusVerified, got.Status)
	assert.NotNil(t, got.ReviewedAt)
	assert.Equal(t, "Documents check out.", *got.AdminReview)
	repo.AssertCalled(t, "Review", mock.Anything, v)
}

func TestUpdateStatusVerifiedInvalidatesListingCache(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	cacheMock := new(MockCacheInvalidator)
	svc := NewService(repo, listingRepo, cacheMock, nil, zap.NewNop())

	v := pendingVerification()
	repo.On("FindByID", mock.Anything, v.ID).Return(v, nil)
	repo.On("Review", mock.Anything, v).Return(nil)
	cacheMock.On("DeletePattern", mock.Anything, listing.ListCacheKeyPattern).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), v.ID, UpdateStatusRequest{Status: StatusVerified})
	assert.NoError(t, err)
	cacheMock.AssertCalled(t, "DeletePattern", mock.Anything, listing.ListCacheKeyPattern)
}

func TestUpdateStatusRejectedLeavesListingCacheAlone(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	cacheMock := new(MockCacheInvalidator)
	svc := NewService(repo, listingRepo, cacheMock, nil, zap.NewNop())

	v := pendingVerification()
	repo.On("FindByID", mock.Anything, v.ID).Return(v, nil)
	repo.On("Review", mock.Anything, v).Return(nil)

	got, err := svc.UpdateStatus(context.Background(), v.ID, UpdateStatusRequest{Status: StatusRejected})
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
	cacheMock.AssertNotCalled(t, "DeletePattern", mock.Anything, mock.Anything)
}

func TestUpdateStatusConflictsOnTerminalRecord(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	for _, terminal := range []string{StatusVerified, StatusRejected} {
		v := pendingVerification()
		v.Status = terminal
		repo.On("FindByID", mock.Anything, v.ID).Return(v, nil)

		_, err := svc.UpdateStatus(context.Background(), v.ID, UpdateStatusRequest{Status: StatusVerified})
		apiErr, ok := common.IsAPIError(err)
		assert.True(t, ok, "status %s", terminal)
		assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode, "status %s", terminal)
	}
}

func TestRemindStalePendingCounts(t *testing.T) {
	repo := new(MockVerificationRepository)
	listingRepo := new(MockListingRepository)
	svc := NewService(repo, listingRepo, nil, nil, zap.NewNop())

	stale := []Verification{*pendingVerification(), *pendingVerification()}
	repo.On("FindStalePending", mock.Anything, mock.AnythingOfType("time.Time")).Return(stale, nil)

	count, err := svc.RemindStalePending(context.Background(), 7*24*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestToResponseSplitsDocuments(t *testing.T) {
	v := pendingVerification()
	resp := ToResponse(v)
	assert.Equal(t, []string{"deed.pdf", "khata.pdf"}, resp.Documents)
	assert.Equal(t, StatusPending, resp.Status)
}

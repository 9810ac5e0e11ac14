package listing

import (
	"context"
	"errors"
	"testing"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockListingRepository is a mock type for listing.Repository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) List(ctx context.Context, query ListQuery) ([]Listing, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Listing), args.Error(1)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockListingRepository) IncrementViewsAndGet(ctx context.Context, id uuid.UUID) (*Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Listing), args.Error(1)
}

func (m *MockListingRepository) ListAll(ctx context.Context) ([]Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Listing), args.Error(1)
}

func newTestService(repo Repository) *ServiceImplementation {
	cfg := &config.Config{}
	return NewService(repo, nil, nil, cfg, zap.NewNop())
}

func sellerFixture(name, email, phone string, verified, showIdentity bool) *user.User {
	u := &user.User{
		Role:             common.RoleSeller,
		IsAadharVerified: verified,
		ShowIdentity:     showIdentity,
	}
	u.ID = uuid.New()
	u.Name = &name
	u.Email = &email
	u.Phone = &phone
	return u
}

func TestListRedactsSellerIdentity(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	hidden := sellerFixture("Asha Rao", "asha@example.com", "+91-1111111111", true, false)
	shown := sellerFixture("Vikram Shah", "vikram@example.com", "+91-2222222222", true, true)
	unverified := sellerFixture("Kiran Patel", "kiran@example.com", "+91-3333333333", false, false)

	listings := []Listing{
		{Title: "Plot A", Category: CategoryPrivate, Seller: hidden, SellerID: hidden.ID},
		{Title: "Plot B", Category: CategoryPrivate, Seller: shown, SellerID: shown.ID},
		{Title: "Plot C", Category: CategoryPrivate, Seller: unverified, SellerID: unverified.ID},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(listings, nil)

	got, err := svc.List(context.Background(), ListQuery{})
	assert.NoError(t, err)
	assert.Len(t, got, 3)

	assert.Equal(t, "Verified User", got[0].SellerName)
	assert.Equal(t, "Protected", got[0].SellerEmail)
	assert.Equal(t, "Protected", got[0].SellerPhone)
	assert.True(t, got[0].IsSellerVerified)

	assert.Equal(t, "Vikram Shah", got[1].SellerName)
	assert.Equal(t, "vikram@example.com", got[1].SellerEmail)
	assert.Equal(t, "+91-2222222222", got[1].SellerPhone)

	assert.Equal(t, "User", got[2].SellerName)
	assert.Equal(t, "Protected", got[2].SellerEmail)
	assert.False(t, got[2].IsSellerVerified)
}

func TestListAnnotatesDemand(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	listings := []Listing{
		{Title: "Hot Plot", Category: CategoryPrivate, PriceGrowth: 30, Views: 999, InquiryCount: 4, SaveCount: 2},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(listings, nil)

	got, err := svc.List(context.Background(), ListQuery{})
	assert.NoError(t, err)
	assert.Equal(t, 100, got[0].DemandScore)
	assert.Equal(t, DemandLabelHigh, got[0].DemandLabel)
}

func TestListAppliesImageFallback(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	blob := "blob:http://localhost/abcd"
	listings := []Listing{
		{Title: "No Image", Category: CategoryGovernment},
		{Title: "Blob Image", Category: CategoryPrivate, ImageURL: &blob},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(listings, nil)

	got, err := svc.List(context.Background(), ListQuery{})
	assert.NoError(t, err)
	assert.Equal(t, fallbackImageGovernment, got[0].ImageURL)
	assert.Equal(t, fallbackImagePrivate, got[1].ImageURL)
}

func TestListFallsBackToFixturesWhenDBUnavailable(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	got, err := svc.List(context.Background(), ListQuery{State: "Uttar Pradesh"})
	assert.NoError(t, err)
	assert.NotEmpty(t, got)
	for _, l := range got {
		assert.Equal(t, "Uttar Pradesh", l.State)
	}
}

func TestListFixtureFallbackHonorsSearchAndCategory(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	got, err := svc.List(context.Background(), ListQuery{Category: CategoryPrivate, Search: "residential"})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Prime Residential Land", got[0].Title)

	got, err = svc.List(context.Background(), ListQuery{Category: "ALL", State: "ALL"})
	assert.NoError(t, err)
	assert.Len(t, got, len(fixtureListings))
}

func TestGetByIDIncrementsViews(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	id := uuid.New()
	l := &Listing{Title: "Plot", Category: CategoryPrivate, Views: 5}
	l.ID = id
	repo.On("IncrementViewsAndGet", mock.Anything, id).Return(l, nil)

	got, err := svc.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, id, got.ID)
	repo.AssertCalled(t, "IncrementViewsAndGet", mock.Anything, id)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("IncrementViewsAndGet", mock.Anything, id).Return(nil, common.ErrNotFound.WithDetails("Listing not found."))

	_, err := svc.GetByID(context.Background(), id)
	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrNotFound.StatusCode, apiErr.StatusCode)
}

func TestGetByIDFixtureFallback(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	fixtureID := fixtureListings[0].ID
	repo.On("IncrementViewsAndGet", mock.Anything, fixtureID).Return(nil, errors.New("connection refused"))

	got, err := svc.GetByID(context.Background(), fixtureID)
	assert.NoError(t, err)
	assert.Equal(t, fixtureListings[0].Title, got.Title)
	assert.Equal(t, DemandLabelModerate, got.DemandLabel)
}

func TestCreateGeneratesSlugAndDefaults(t *testing.T) {
	repo := new(MockListingRepository)
	svc := newTestService(repo)

	sellerID := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*listing.Listing")).Return(nil)

	l, err := svc.Create(context.Background(), sellerID, CreateListingRequest{
		Title:    "Industrial Plot Near Highway",
		Category: CategoryPrivate,
		Purpose:  PurposeSale,
		Location: "Sector 9",
		State:    "Gujarat",
		Area:     1200,
		Price:    5000000,
		Tags:     []string{"Industrial"},
	})
	assert.NoError(t, err)
	assert.Equal(t, sellerID, l.SellerID)
	assert.Contains(t, l.Slug, "industrial-plot-near-highway-")
	assert.Equal(t, "INR", l.Currency)
	assert.Equal(t, "sq ft", l.AreaUnit)
	assert.Equal(t, []string{"Industrial"}, decodeTags(l.Tags))
}

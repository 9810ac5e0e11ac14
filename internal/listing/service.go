// File: internal/listing/service.go
package listing

import (
	"context"
	"fmt"
	"strings"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/platform/cache"
	"bhoomi_backend/internal/platform/elasticsearch"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const listCachePrefix = "listings:list:"

// ListCacheKeyPattern matches every cached catalog page. Writers that
// change what the catalog shows (create, badge flip) delete this pattern.
const ListCacheKeyPattern = listCachePrefix + "*"

// Service defines listing business logic.
type Service interface {
	List(ctx context.Context, query ListQuery) ([]ListingResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ListingResponse, error)
	Create(ctx context.Context, sellerID uuid.UUID, req CreateListingRequest) (*Listing, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo     Repository
	cache    *cache.Cache
	esClient *elasticsearch.ESClientWrapper
	cfg      *config.Config
	logger   *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new listing service. The cache and search client are
// optional; nil disables them.
func NewService(
	repo Repository,
	cacheClient *cache.Cache,
	esClient *elasticsearch.ESClientWrapper,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		cache:    cacheClient,
		esClient: esClient,
		cfg:      cfg,
		logger:   logger,
	}
}

// List returns the demand-annotated, identity-redacted catalog. When the
// database is unreachable it serves the built-in fixture dataset instead.
func (s *ServiceImplementation) List(ctx context.Context, query ListQuery) ([]ListingResponse, error) {
	cacheKey := listCacheKey(query)
	var cached []ListingResponse
	if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	listings, err := s.repo.List(ctx, query)
	if err != nil {
		s.logger.Warn("Database unavailable for listing query; serving fixture data", zap.Error(err))
		return fixtureFallback(query), nil
	}

	responses := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, toListingResponse(&listings[i]))
	}

	if err := s.cache.SetJSON(ctx, cacheKey, responses, s.cfg.ListingCacheTTL); err != nil {
		s.logger.Debug("Failed to cache listing query result", zap.Error(err))
	}
	return responses, nil
}

// GetByID returns a single annotated listing and bumps its view counter.
func (s *ServiceImplementation) GetByID(ctx context.Context, id uuid.UUID) (*ListingResponse, error) {
	l, err := s.repo.IncrementViewsAndGet(ctx, id)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.StatusCode == common.ErrNotFound.StatusCode {
			return nil, apiErr
		}
		s.logger.Warn("Database unavailable for listing detail; trying fixture data", zap.Error(err))
		if fixture, ok := fixtureByID(id); ok {
			return fixture, nil
		}
		return nil, common.ErrNotFound.WithDetails("Listing not found.")
	}
	resp := toListingResponse(l)
	return &resp, nil
}

// Create stores a new listing owned by the caller, invalidates the list
// cache and pushes the document to the search index on a best-effort basis.
func (s *ServiceImplementation) Create(ctx context.Context, sellerID uuid.UUID, req CreateListingRequest) (*Listing, error) {
	l := &Listing{
		Title:             req.Title,
		Slug:              generateSlug(req.Title),
		Category:          req.Category,
		Purpose:           req.Purpose,
		Location:          req.Location,
		State:             req.State,
		District:          req.District,
		Area:              req.Area,
		AreaUnit:          req.AreaUnit,
		Price:             req.Price,
		Currency:          req.Currency,
		Authority:         req.Authority,
		Description:       req.Description,
		LeaseTerms:        req.LeaseTerms,
		EligibilityRules:  req.EligibilityRules,
		BuyerRequirements: req.BuyerRequirements,
		AdditionalDetails: req.AdditionalDetails,
		ImageURL:          req.ImageURL,
		Tags:              encodeTags(req.Tags),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		SellerID:          sellerID,
	}
	if l.AreaUnit == "" {
		l.AreaUnit = "sq ft"
	}
	if l.Currency == "" {
		l.Currency = "INR"
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := s.cache.DeletePattern(ctx, ListCacheKeyPattern); err != nil {
		s.logger.Debug("Failed to invalidate listing cache", zap.Error(err))
	}
	IndexListing(ctx, s.esClient, l, s.logger)

	s.logger.Info("Listing created",
		zap.String("listingID", l.ID.String()),
		zap.String("sellerID", sellerID.String()))
	return l, nil
}

// toListingResponse annotates a listing with its demand index and applies
// the seller redaction rules.
func toListingResponse(l *Listing) ListingResponse {
	score := DemandScore(l.PriceGrowth, l.Views, l.InquiryCount, l.SaveCount)

	resp := ListingResponse{
		ID:                l.ID,
		Title:             l.Title,
		Slug:              l.Slug,
		Category:          l.Category,
		Purpose:           l.Purpose,
		Location:          l.Location,
		State:             l.State,
		District:          l.District,
		Area:              l.Area,
		AreaUnit:          l.AreaUnit,
		Price:             l.Price,
		Currency:          l.Currency,
		Verified:          l.VerifiedBadge,
		Authority:         l.Authority,
		Description:       l.Description,
		LeaseTerms:        l.LeaseTerms,
		EligibilityRules:  l.EligibilityRules,
		BuyerRequirements: l.BuyerRequirements,
		AdditionalDetails: l.AdditionalDetails,
		ImageURL:          resolveImageURL(l.ImageURL, l.Category),
		Tags:              decodeTags(l.Tags),
		Views:             l.Views,
		InquiryCount:      l.InquiryCount,
		SaveCount:         l.SaveCount,
		PriceGrowth:       l.PriceGrowth,
		DemandScore:       score,
		DemandLabel:       DemandLabelFor(score),
		SellerID:          l.SellerID,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}

	if l.Latitude != nil && l.Longitude != nil {
		resp.Coordinates = &Coordinates{Lat: *l.Latitude, Lng: *l.Longitude}
	}

	resp.SellerName = "User"
	resp.SellerEmail = "Protected"
	resp.SellerPhone = "Protected"
	if seller := l.Seller; seller != nil {
		resp.IsSellerVerified = seller.IsAadharVerified
		if seller.ShowIdentity {
			if seller.Name != nil && *seller.Name != "" {
				resp.SellerName = *seller.Name
			}
			if seller.Email != nil {
				resp.SellerEmail = *seller.Email
			}
			if seller.Phone != nil {
				resp.SellerPhone = *seller.Phone
			}
		} else if seller.IsAadharVerified {
			resp.SellerName = "Verified User"
		}
	}
	return resp
}

// generateSlug derives a unique slug from the title. A short random suffix
// keeps repeated titles from colliding on the unique index.
func generateSlug(title string) string {
	base := slug.Make(title)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s", base, suffix)
}

func listCacheKey(query ListQuery) string {
	return fmt.Sprintf("%scat=%s|state=%s|q=%s",
		listCachePrefix,
		query.Category,
		query.State,
		strings.ToLower(query.Search))
}

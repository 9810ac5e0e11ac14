// File: internal/verification/service.go
package verification

import (
	"context"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/platform/elasticsearch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListingCacheInvalidator clears cached listing catalog pages. Satisfied by
// *cache.Cache.
type ListingCacheInvalidator interface {
	DeletePattern(ctx context.Context, pattern string) error
}

// Service defines the verification workflow.
type Service interface {
	Submit(ctx context.Context, sellerID uuid.UUID, req SubmitRequest) (*Verification, error)
	ListAll(ctx context.Context, q common.PaginationQuery) ([]Response, *common.Pagination, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*Verification, error)
	RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo        Repository
	listingRepo listing.Repository
	cache       ListingCacheInvalidator
	esClient    *elasticsearch.ESClientWrapper
	logger      *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new verification service. The cache and search
// client are optional; nil disables them.
func NewService(
	repo Repository,
	listingRepo listing.Repository,
	cacheClient ListingCacheInvalidator,
	esClient *elasticsearch.ESClientWrapper,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:        repo,
		listingRepo: listingRepo,
		cache:       cacheClient,
		esClient:    esClient,
		logger:      logger,
	}
}

// Submit files a PENDING verification for a listing the caller wants
// reviewed. The listing must exist.
func (s *ServiceImplementation) Submit(ctx context.Context, sellerID uuid.UUID, req SubmitRequest) (*Verification, error) {
	if _, err := s.listingRepo.FindByID(ctx, req.ListingID); err != nil {
		return nil, err
	}

	v := &Verification{
		ListingID: req.ListingID,
		SellerID:  sellerID,
		Documents: joinDocuments(req.Documents),
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("Failed to create verification", zap.Error(err), zap.String("listingID", req.ListingID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to submit verification.")
	}

	s.logger.Info("Verification submitted",
		zap.String("verificationID", v.ID.String()),
		zap.String("listingID", req.ListingID.String()))
	return v, nil
}

// ListAll returns a page of the review queue, newest first.
func (s *ServiceImplementation) ListAll(ctx context.Context, q common.PaginationQuery) ([]Response, *common.Pagination, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := s.repo.FindAll(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("Failed to list verifications", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to fetch verifications.")
	}
	responses := make([]Response, 0, len(records))
	for i := range records {
		responses = append(responses, ToResponse(&records[i]))
	}
	return responses, common.NewPagination(total, page, pageSize), nil
}

// UpdateStatus applies an admin decision. Only PENDING records may
// transition; a VERIFIED decision also flips the listing's badge, atomically.
func (s *ServiceImplementation) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*Verification, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status != StatusPending {
		return nil, common.ErrConflict.WithDetails("Verification has already been reviewed.")
	}

	now := time.Now()
	v.Status = req.Status
	v.ReviewedAt = &now
	if req.AdminReview != "" {
		v.AdminReview = &req.AdminReview
	}

	if err := s.repo.Review(ctx, v); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.logger.Error("Failed to apply verification decision", zap.Error(err), zap.String("verificationID", id.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to update verification status.")
	}

	if v.Status == StatusVerified {
		s.syncListingAfterBadgeFlip(ctx, v.ListingID)
	}

	s.logger.Info("Verification reviewed",
		zap.String("verificationID", v.ID.String()),
		zap.String("status", v.Status))
	return v, nil
}

// syncListingAfterBadgeFlip drops cached catalog pages that still show the
// old badge and refreshes the search mirror. Both are best-effort.
func (s *ServiceImplementation) syncListingAfterBadgeFlip(ctx context.Context, listingID uuid.UUID) {
	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, listing.ListCacheKeyPattern); err != nil {
			s.logger.Warn("Failed to invalidate listing cache after badge flip",
				zap.Error(err), zap.String("listingID", listingID.String()))
		}
	}

	if s.esClient == nil {
		return
	}
	l, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		s.logger.Warn("Failed to reload listing for reindex after badge flip",
			zap.Error(err), zap.String("listingID", listingID.String()))
		return
	}
	listing.IndexListing(ctx, s.esClient, l, s.logger)
}

// RemindStalePending logs a reminder for PENDING records older than the
// given age and returns how many were found. Invoked from the cron job.
func (s *ServiceImplementation) RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	stale, err := s.repo.FindStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	for i := range stale {
		s.logger.Warn("Verification pending past review window",
			zap.String("verificationID", stale[i].ID.String()),
			zap.String("listingID", stale[i].ListingID.String()),
			zap.Time("submittedAt", stale[i].CreatedAt))
	}
	return len(stale), nil
}

// File: internal/proposal/service.go
package proposal

import (
	"context"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines proposal business logic.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Proposal, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]Response, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo        Repository
	listingRepo listing.Repository
	logger      *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new proposal service.
func NewService(repo Repository, listingRepo listing.Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:        repo,
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// Create records a proposal against an existing listing. Duplicate
// proposals from the same buyer are allowed.
func (s *ServiceImplementation) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*Proposal, error) {
	if _, err := s.listingRepo.FindByID(ctx, req.ListingID); err != nil {
		return nil, err
	}

	p := &Proposal{
		ListingID:    req.ListingID,
		UserID:       userID,
		ConsentGiven: req.ConsentGiven,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create proposal", zap.Error(err), zap.String("listingID", req.ListingID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to submit proposal.")
	}

	s.logger.Info("Proposal submitted",
		zap.String("proposalID", p.ID.String()),
		zap.String("listingID", req.ListingID.String()))
	return p, nil
}

// ListMine returns the caller's proposals, newest first.
func (s *ServiceImplementation) ListMine(ctx context.Context, userID uuid.UUID) ([]Response, error) {
	proposals, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list proposals", zap.Error(err), zap.String("userID", userID.String()))
		return nil, common.ErrInternalServer.WithDetails("Failed to fetch proposals.")
	}
	responses := make([]Response, 0, len(proposals))
	for i := range proposals {
		responses = append(responses, ToResponse(&proposals[i]))
	}
	return responses, nil
}

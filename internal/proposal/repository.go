// File: internal/proposal/repository.go
package proposal

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for proposals.
type Repository interface {
	Create(ctx context.Context, p *Proposal) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]Proposal, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM proposal repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Proposal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]Proposal, error) {
	var proposals []Proposal
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}

// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"
	"strings"

	"bhoomi_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for listings.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	List(ctx context.Context, query ListQuery) ([]Listing, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	// IncrementViewsAndGet bumps the view counter and returns the fresh row
	// with the seller preloaded.
	IncrementViewsAndGet(ctx context.Context, id uuid.UUID) (*Listing, error)
	ListAll(ctx context.Context) ([]Listing, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, l *Listing) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return common.ErrInternalServer.WithDetails("Failed to create listing.")
	}
	return nil
}

func (r *gormRepository) List(ctx context.Context, query ListQuery) ([]Listing, error) {
	db := r.db.WithContext(ctx).Model(&Listing{}).Preload("Seller")

	if query.Category != "" && query.Category != "ALL" {
		db = db.Where("category = ?", query.Category)
	}
	if query.State != "" && query.State != "ALL" {
		db = db.Where("state = ?", query.State)
	}
	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}

	var listings []Listing
	if err := db.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var l Listing
	err := r.db.WithContext(ctx).Preload("Seller").First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	return &l, nil
}

func (r *gormRepository) IncrementViewsAndGet(ctx context.Context, id uuid.UUID) (*Listing, error) {
	res := r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("Listing not found.")
	}
	return r.FindByID(ctx, id)
}

// ListAll returns every listing with its seller, used by the search
// backfill command.
func (r *gormRepository) ListAll(ctx context.Context) ([]Listing, error) {
	var listings []Listing
	if err := r.db.WithContext(ctx).Preload("Seller").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

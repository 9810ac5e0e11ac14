// File: internal/verification/repository.go
package verification

import (
	"context"
	"errors"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for verification records.
type Repository interface {
	Create(ctx context.Context, v *Verification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Verification, error)
	// FindAll returns a page of records, newest first, plus the total count.
	FindAll(ctx context.Context, offset, limit int) ([]Verification, int64, error)
	FindStalePending(ctx context.Context, olderThan time.Time) ([]Verification, error)
	// Review applies a status transition and, when the new status is
	// VERIFIED, flips the listing badge in the same transaction.
	Review(ctx context.Context, v *Verification) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM verification repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, v *Verification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Verification, error) {
	var v Verification
	err := r.db.WithContext(ctx).Preload("Listing").Preload("Seller").First(&v, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Verification record not found.")
		}
		return nil, err
	}
	return &v, nil
}

func (r *gormRepository) FindAll(ctx context.Context, offset, limit int) ([]Verification, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Verification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []Verification
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Seller").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *gormRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]Verification, error) {
	var records []Verification
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", StatusPending, olderThan).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormRepository) Review(ctx context.Context, v *Verification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(v).Error; err != nil {
			return err
		}
		if v.Status == StatusVerified {
			res := tx.Model(&listing.Listing{}).
				Where("id = ?", v.ListingID).
				Update("verified_badge", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return common.ErrNotFound.WithDetails("Listing not found.")
			}
		}
		return nil
	})
}

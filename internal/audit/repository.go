package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for audit log persistence.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM audit repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]Entry, error) {
	var entries []Entry
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

package database

import (
	"bhoomi_backend/internal/audit"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/proposal"
	"bhoomi_backend/internal/user"
	"bhoomi_backend/internal/verification"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every registered model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&listing.Listing{},
		&verification.Verification{},
		&proposal.Proposal{},
		&audit.Entry{},
	)
}

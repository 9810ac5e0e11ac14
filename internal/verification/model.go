// File: internal/verification/model.go
package verification

import (
	"strings"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/user"

	"github.com/google/uuid"
)

// Verification status values. VERIFIED and REJECTED are terminal.
const (
	StatusPending  = "PENDING"
	StatusVerified = "VERIFIED"
	StatusRejected = "REJECTED"
)

// Verification is a seller's request to have a listing's documents reviewed.
type Verification struct {
	common.BaseModel
	ListingID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Listing   *listing.Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	SellerID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Seller    *user.User       `gorm:"foreignKey:SellerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	// Documents is the submitted reference list flattened to a single
	// comma-joined string.
	Documents string `gorm:"type:text;not null"`

	Status      string  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	AdminReview *string `gorm:"type:text"`
	ReviewedAt  *time.Time
}

func (Verification) TableName() string {
	return "verifications"
}

// SubmitRequest is the payload for submitting listing documents.
type SubmitRequest struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
	Documents []string  `json:"documents" binding:"required,min=1"`
}

// UpdateStatusRequest is the admin review payload.
type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required,oneof=VERIFIED REJECTED"`
	AdminReview string `json:"adminReview"`
}

// SellerSummary exposes only the reviewer-relevant seller fields.
type SellerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Response is the API shape of a verification record.
type Response struct {
	ID          uuid.UUID      `json:"id"`
	ListingID   uuid.UUID      `json:"listingId"`
	SellerID    uuid.UUID      `json:"sellerId"`
	Documents   []string       `json:"documents"`
	Status      string         `json:"status"`
	AdminReview *string        `json:"adminReview,omitempty"`
	ReviewedAt  *time.Time     `json:"reviewedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	Listing     *ListingBrief  `json:"listing,omitempty"`
	Seller      *SellerSummary `json:"seller,omitempty"`
}

// ListingBrief is the subset of listing fields shown in the review queue.
type ListingBrief struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	State    string    `json:"state"`
	Verified bool      `json:"verified"`
}

// ToResponse maps a verification record to its API shape.
func ToResponse(v *Verification) Response {
	resp := Response{
		ID:          v.ID,
		ListingID:   v.ListingID,
		SellerID:    v.SellerID,
		Documents:   splitDocuments(v.Documents),
		Status:      v.Status,
		AdminReview: v.AdminReview,
		ReviewedAt:  v.ReviewedAt,
		CreatedAt:   v.CreatedAt,
	}
	if v.Listing != nil {
		resp.Listing = &ListingBrief{
			ID:       v.Listing.ID,
			Title:    v.Listing.Title,
			Category: v.Listing.Category,
			State:    v.Listing.State,
			Verified: v.Listing.VerifiedBadge,
		}
	}
	if v.Seller != nil {
		summary := &SellerSummary{ID: v.Seller.ID}
		if v.Seller.Name != nil {
			summary.Name = *v.Seller.Name
		}
		if v.Seller.Email != nil {
			summary.Email = *v.Seller.Email
		}
		resp.Seller = summary
	}
	return resp
}

func joinDocuments(docs []string) string {
	cleaned := make([]string, 0, len(docs))
	for _, d := range docs {
		if d = strings.TrimSpace(d); d != "" {
			cleaned = append(cleaned, d)
		}
	}
	return strings.Join(cleaned, ",")
}

func splitDocuments(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}

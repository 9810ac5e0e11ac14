// File: internal/proposal/model.go
package proposal

import (
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/listing"
	"bhoomi_backend/internal/user"

	"github.com/google/uuid"
)

// Proposal records a buyer's interest in a listing, together with their
// consent to share contact details with the seller. Records are immutable.
type Proposal struct {
	common.BaseModel
	ListingID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Listing   *listing.Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	User      *user.User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	ConsentGiven bool `gorm:"not null;default:false"`
}

func (Proposal) TableName() string {
	return "proposals"
}

// CreateRequest is the payload for submitting a proposal.
type CreateRequest struct {
	ListingID    uuid.UUID `json:"listingId" binding:"required"`
	ConsentGiven bool      `json:"consentGiven"`
}

// Response is the API shape of a proposal.
type Response struct {
	ID           uuid.UUID     `json:"id"`
	ListingID    uuid.UUID     `json:"listingId"`
	UserID       uuid.UUID     `json:"userId"`
	ConsentGiven bool          `json:"consentGiven"`
	CreatedAt    time.Time     `json:"createdAt"`
	Listing      *ListingBrief `json:"listing,omitempty"`
}

// ListingBrief is the subset of listing fields shown alongside a proposal.
type ListingBrief struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location"`
	State    string    `json:"state"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
}

// ToResponse maps a proposal to its API shape.
func ToResponse(p *Proposal) Response {
	resp := Response{
		ID:           p.ID,
		ListingID:    p.ListingID,
		UserID:       p.UserID,
		ConsentGiven: p.ConsentGiven,
		CreatedAt:    p.CreatedAt,
	}
	if p.Listing != nil {
		resp.Listing = &ListingBrief{
			ID:       p.Listing.ID,
			Title:    p.Listing.Title,
			Location: p.Listing.Location,
			State:    p.Listing.State,
			Price:    p.Listing.Price,
			Currency: p.Listing.Currency,
		}
	}
	return resp
}

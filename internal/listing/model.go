// File: internal/listing/model.go
package listing

import (
	"encoding/json"
	"time"

	"bhoomi_backend/internal/common"
	"bhoomi_backend/internal/user"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Category and purpose enums mirror the values stored in the database.
const (
	CategoryGovernment = "GOVERNMENT"
	CategoryPrivate    = "PRIVATE"

	PurposeSale  = "SALE"
	PurposeLease = "LEASE"
)

// Fallback images used when a listing has no usable image URL.
const (
	fallbackImageGovernment = "https://images.unsplash.com/photo-1541819661191-2090875b0ec8?auto=format&fit=crop&q=80&w=800"
	fallbackImagePrivate    = "https://images.unsplash.com/photo-1500382017468-9049fee78a6c?auto=format&fit=crop&q=80&w=800"
)

// Listing is a land parcel offered for sale or lease.
type Listing struct {
	common.BaseModel
	Title    string  `gorm:"type:varchar(255);not null"`
	Slug     string  `gorm:"type:varchar(280);uniqueIndex;not null"`
	Category string  `gorm:"type:varchar(20);not null;index"`
	Purpose  string  `gorm:"type:varchar(20);not null"`
	Location string  `gorm:"type:varchar(255);not null"`
	State    string  `gorm:"type:varchar(100);not null;index"`
	District string  `gorm:"type:varchar(100)"`
	Area     float64 `gorm:"not null"`
	AreaUnit string  `gorm:"type:varchar(20);not null;default:'sq ft'"`
	Price    float64 `gorm:"not null"`
	Currency string  `gorm:"type:varchar(10);not null;default:'INR'"`

	VerifiedBadge bool    `gorm:"not null;default:false"`
	Authority     *string `gorm:"type:varchar(150)"`

	Description       string  `gorm:"type:text"`
	LeaseTerms        *string `gorm:"type:text"`
	EligibilityRules  *string `gorm:"type:text"`
	BuyerRequirements *string `gorm:"type:text"`
	AdditionalDetails *string `gorm:"type:text"`

	ImageURL  *string        `gorm:"type:text"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	Latitude  *float64
	Longitude *float64

	Views        int     `gorm:"not null;default:0"`
	InquiryCount int     `gorm:"not null;default:0"`
	SaveCount    int     `gorm:"not null;default:0"`
	PriceGrowth  float64 `gorm:"not null;default:0"`

	SellerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Seller   *user.User `gorm:"foreignKey:SellerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListQuery carries the supported catalog filters. The literal value "ALL"
// disables a filter.
type ListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	State    string `form:"state"`
}

// CreateListingRequest is the payload for posting a new listing.
type CreateListingRequest struct {
	Title             string   `json:"title" binding:"required,min=3,max=255"`
	Category          string   `json:"category" binding:"required,oneof=GOVERNMENT PRIVATE"`
	Purpose           string   `json:"purpose" binding:"required,oneof=SALE LEASE"`
	Location          string   `json:"location" binding:"required"`
	State             string   `json:"state" binding:"required"`
	District          string   `json:"district"`
	Area              float64  `json:"area" binding:"required,gt=0"`
	AreaUnit          string   `json:"areaUnit"`
	Price             float64  `json:"price" binding:"required,gt=0"`
	Currency          string   `json:"currency"`
	Authority         *string  `json:"authority"`
	Description       string   `json:"description"`
	LeaseTerms        *string  `json:"leaseTerms"`
	EligibilityRules  *string  `json:"eligibilityRules"`
	BuyerRequirements *string  `json:"buyerRequirements"`
	AdditionalDetails *string  `json:"additionalDetails"`
	ImageURL          *string  `json:"imageUrl"`
	Tags              []string `json:"tags"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}

// Coordinates is the lat/lng pair rendered in responses.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ListingResponse is the API shape of a listing: demand-annotated and with
// the seller identity redacted per the disclosure rules.
type ListingResponse struct {
	ID                uuid.UUID    `json:"id"`
	Title             string       `json:"title"`
	Slug              string       `json:"slug"`
	Category          string       `json:"category"`
	Purpose           string       `json:"purpose"`
	Location          string       `json:"location"`
	State             string       `json:"state"`
	District          string       `json:"district"`
	Area              float64      `json:"area"`
	AreaUnit          string       `json:"areaUnit"`
	Price             float64      `json:"price"`
	Currency          string       `json:"currency"`
	Verified          bool         `json:"verified"`
	Authority         *string      `json:"authority,omitempty"`
	Description       string       `json:"description"`
	LeaseTerms        *string      `json:"leaseTerms,omitempty"`
	EligibilityRules  *string      `json:"eligibilityRules,omitempty"`
	BuyerRequirements *string      `json:"buyerRequirements,omitempty"`
	AdditionalDetails *string      `json:"additionalDetails,omitempty"`
	ImageURL          string       `json:"imageUrl"`
	Tags              []string     `json:"tags"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`

	Views        int     `json:"views"`
	InquiryCount int     `json:"inquiryCount"`
	SaveCount    int     `json:"saveCount"`
	PriceGrowth  float64 `json:"priceGrowth"`
	DemandScore  int     `json:"demandScore"`
	DemandLabel  string  `json:"demandLabel"`

	SellerID         uuid.UUID `json:"sellerId"`
	SellerName       string    `json:"sellerName"`
	SellerEmail      string    `json:"sellerEmail"`
	SellerPhone      string    `json:"sellerPhone"`
	IsSellerVerified bool      `json:"isSellerVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func decodeTags(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return []string{}
	}
	return tags
}

func encodeTags(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// resolveImageURL applies the category-specific fallback for missing or
// browser-local blob: URLs.
func resolveImageURL(imageURL *string, category string) string {
	if imageURL != nil && *imageURL != "" && !hasBlobScheme(*imageURL) {
		return *imageURL
	}
	if category == CategoryGovernment {
		return fallbackImageGovernment
	}
	return fallbackImagePrivate
}

func hasBlobScheme(u string) bool {
	return len(u) >= 5 && u[:5] == "blob:"
}

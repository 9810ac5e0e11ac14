// File: internal/user/model.go
package user

import (
	"time"

	"bhoomi_backend/internal/common"

	"github.com/google/uuid"
)

// User represents the user model in the database. Users are never
// hard-deleted; role upgrades, identity verification and the disclosure
// toggle mutate the row in place.
type User struct {
	common.BaseModel
	Email            *string `gorm:"type:varchar(255);uniqueIndex"` // nil for never-set (OAuth edge cases)
	PasswordHash     *string `gorm:"type:varchar(255)"`             // nil for OAuth-only accounts
	Name             *string `gorm:"type:varchar(150)"`
	Phone            *string `gorm:"type:varchar(50)"`
	Role             string  `gorm:"type:varchar(50);not null;default:'GUEST'"`
	GoogleID         *string `gorm:"type:varchar(255);uniqueIndex"`
	AadharNumber     *string `gorm:"type:varchar(12);index"`
	IsAadharVerified bool    `gorm:"not null;default:false"`
	ShowIdentity     bool    `gorm:"not null;default:false"`
	LastLoginAt      *time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// GetID implements shared.UserDataForToken.
func (u *User) GetID() uuid.UUID {
	return u.ID
}

// GetEmail implements shared.UserDataForToken.
func (u *User) GetEmail() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// GetRole implements shared.UserDataForToken.
func (u *User) GetRole() string {
	return u.Role
}

// --- DTOs for API requests/responses ---

// RegisterRequest defines the structure for creating a new user.
// ADMIN is deliberately not an accepted role at registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"` // bcrypt max is 72 bytes
	Name     string `json:"name,omitempty" binding:"omitempty,max=150"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=GUEST SELLER BUYER GOVERNMENT"`
}

// UpgradeRoleRequest is the body of POST /users/upgrade. ADMIN is not a
// self-service target.
type UpgradeRoleRequest struct {
	TargetRole       string                 `json:"target_role" binding:"required,oneof=SELLER BUYER GOVERNMENT"`
	VerificationData map[string]interface{} `json:"verification_data,omitempty"`
}

// VerifyAadharRequest is the body of POST /users/verify-aadhar. The 12-digit
// format check happens in the service so malformed numbers map to 400.
type VerifyAadharRequest struct {
	AadharNumber string `json:"aadhar_number" binding:"required"`
}

// UserResponse defines the structure for user data sent in API responses.
// The aadhar number itself is never echoed back, only its verified flag.
type UserResponse struct {
	ID               uuid.UUID  `json:"id"`
	Email            *string    `json:"email,omitempty"`
	Name             *string    `json:"name,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Role             string     `json:"role"`
	IsAadharVerified bool       `json:"is_aadhar_verified"`
	ShowIdentity     bool       `json:"show_identity"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a User model to a UserResponse DTO.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		Role:             u.Role,
		IsAadharVerified: u.IsAadharVerified,
		ShowIdentity:     u.ShowIdentity,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
		LastLoginAt:      u.LastLoginAt,
	}
}

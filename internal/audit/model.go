package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions recorded by the user module.
const (
	ActionRoleUpgradePrefix = "ROLE_UPGRADE_"
	ActionAadharVerified    = "AADHAR_VERIFICATION_SUCCESS"
)

// Entry is an append-only audit record. Entries are never updated or
// deleted.
type Entry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action    string         `gorm:"type:varchar(100);not null" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:current_timestamp;index" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Entry) TableName() string {
	return "audit_logs"
}

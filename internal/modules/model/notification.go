package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationTaskAssigned      = "task_assigned"
	NotificationTaskAccepted      = "task_accepted"
	NotificationTaskReminder      = "task_reminder"
	NotificationUnassignedWarning = "task_unassigned_warning"
)

// Notification payload keys used for reminder dedup.
const (
	PayloadTaskID = "task_id"
	PayloadKind   = "kind"
	PayloadRole   = "role"
)

// Notification is owned by exactly one profile. Rows are only ever created by
// the emitter and mutated only to flip is_read.
type Notification struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProfileID uuid.UUID         `gorm:"type:uuid;not null;index" json:"profile_id"`
	Type      string            `gorm:"type:text;not null" json:"type"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"payload"`
	IsRead    bool              `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Notification <-> Profile
	Profile *Profile `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"profile,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

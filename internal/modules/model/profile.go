package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile extends a user with marketplace-facing fields. Its id is distinct
// from the user id; notifications are owned by profiles, not users.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	DisplayName string    `gorm:"type:text" json:"display_name"`
	Bio         string    `gorm:"type:text" json:"bio"`

	// RtgAvg is recomputed as a full aggregate whenever a review lands for this
	// profile as target. Rounded to 2 decimals.
	RtgAvg   float64 `gorm:"not null;default:0" json:"rtg_avg"`
	RtgCount int     `gorm:"not null;default:0" json:"rtg_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Profile <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"user,omitempty"`
}

func (Profile) TableName() string { return "profiles" }

package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerifyEmail = "email"
	VerifyPhone = "phone"
)

type VerificationCode struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       string     `gorm:"type:varchar(16);not null" json:"type"`
	Target     string     `gorm:"type:text;not null" json:"target"`
	Code       string     `gorm:"type:varchar(8);not null" json:"code"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// VerificationCode <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"user,omitempty"`
}

func (VerificationCode) TableName() string { return "verification_codes" }

package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:text" json:"-"`
	Phone        *string   `gorm:"type:varchar(32)" json:"phone"`

	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	PhoneVerifiedAt *time.Time `json:"phone_verified_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// User <-> Profile (one-to-one)
	Profile *Profile `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"profile,omitempty"`
}

func (User) TableName() string { return "users" }

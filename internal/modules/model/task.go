package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the integer-coded task lifecycle status.
type TaskStatus int

const (
	StatusAvailable  TaskStatus = 0
	StatusAccepted   TaskStatus = 1
	StatusInProgress TaskStatus = 2
	StatusCompleted  TaskStatus = 3
	StatusCancelled  TaskStatus = 4
	StatusExpired    TaskStatus = 5
)

var statusLabels = map[TaskStatus]string{
	StatusAvailable:  "available",
	StatusAccepted:   "accepted",
	StatusInProgress: "in progress",
	StatusCompleted:  "completed",
	StatusCancelled:  "cancelled",
	StatusExpired:    "expired",
}

func (s TaskStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display string; unknown codes map to "unknown" instead of failing.
func (s TaskStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "unknown"
}

func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

type Task struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string     `gorm:"type:text;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	CreatorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	AssignedUserID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_user_id"`
	StatusID       TaskStatus `gorm:"not null;default:0;index" json:"status_id"`

	Price   float64  `gorm:"not null;default:0" json:"price"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `gorm:"type:text" json:"address"`
	City    string   `gorm:"type:text" json:"city"`
	County  string   `gorm:"type:text" json:"county"`
	Country string   `gorm:"type:text" json:"country"`

	StartTime                time.Time `gorm:"not null;index" json:"start_time"`
	AutoAssignAt             time.Time `gorm:"not null" json:"auto_assign_at"`
	EstimatedDurationMinutes int       `gorm:"not null;default:0" json:"estimated_duration_minutes"`
	StatusNote               string    `gorm:"type:text" json:"status_note"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> User
	Creator      *User `gorm:"foreignKey:CreatorID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"creator,omitempty"`
	AssignedUser *User `gorm:"foreignKey:AssignedUserID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"assigned_user,omitempty"`

	// Task <-> Attachment (one-to-many)
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"attachments,omitempty"`
}

func (Task) TableName() string { return "tasks" }

// LocationLabel builds the human-readable location for display. Address and
// the city/county/country area are preferred; bare coordinates are formatted
// to 3 decimals; with nothing present a fixed placeholder is returned.
func (t *Task) LocationLabel() string {
	area := joinNonEmpty(", ", t.City, t.County, t.Country)
	switch {
	case t.Address != "" && area != "":
		return t.Address + ", " + area
	case t.Address != "":
		return t.Address
	case area != "":
		return area
	case t.Lat != nil && t.Lng != nil:
		return fmt.Sprintf("Lat %.3f, Lng %.3f", *t.Lat, *t.Lng)
	}
	return "location unavailable"
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is tied to a completed task: authored by the creator, directed at the
// assignee. The unique index on task_id turns duplicate submissions into a
// conflict at the store.
type Review struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"task_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	TargetID uuid.UUID `gorm:"type:uuid;not null;index" json:"target_id"`
	Rating   int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string    `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Review <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"task,omitempty"`

	// Review <-> User
	Author *User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"author,omitempty"`
	Target *User `gorm:"foreignKey:TargetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"target,omitempty"`
}

func (Review) TableName() string { return "task_reviews" }

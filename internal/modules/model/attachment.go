package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a task photo stored in S3; the row keeps the object metadata.
type Attachment struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID   uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	Bucket   string    `gorm:"type:text;not null" json:"bucket"`
	S3Key    string    `gorm:"type:text;not null" json:"s3_key"`
	ETag     string    `gorm:"type:text" json:"etag"`
	SHA256   string    `gorm:"type:varchar(64)" json:"sha256"`
	MIME     string    `gorm:"type:text" json:"mime"`
	SizeB    int64     `gorm:"not null;default:0" json:"size_b"`
	Filename string    `gorm:"type:text" json:"filename"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Attachment <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"task,omitempty"`
}

func (Attachment) TableName() string { return "attachments" }

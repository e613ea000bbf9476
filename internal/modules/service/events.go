package service

import "github.com/google/uuid"

// TaskAssignedEvent crosses the fire-and-forget boundary between the task
// lifecycle and the notification emitter, either through the message queue or
// the in-process fallback.
type TaskAssignedEvent struct {
	TaskID       uuid.UUID `json:"task_id"`
	Title        string    `json:"title"`
	CreatorID    uuid.UUID `json:"creator_id"`
	CreatorName  string    `json:"creator_name"`
	AssigneeID   uuid.UUID `json:"assignee_id"`
	AssigneeName string    `json:"assignee_name"`
}

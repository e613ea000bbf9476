package repo

import (
	"context"
	"time"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	Accept(ctx context.Context, taskID, userID uuid.UUID) (int64, error)
	Refuse(ctx context.Context, taskID, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status model.TaskStatus, note string) (int64, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.Task, error)
	CreateAttachment(ctx context.Context, a *model.Attachment) error
	ListAttachments(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error)
}

type taskRepo struct {
	db *gorm.DB

	// Resolved once at construction. Older deployments lack the status_note
	// column; updates then silently fall back to status_id alone.
	hasStatusNote bool
}

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{
		db:            db,
		hasStatusNote: db.Migrator().HasColumn(&model.Task{}, "status_note"),
	}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).
		Preload("Creator").Preload("AssignedUser").
		Where(&model.Task{ID: id}).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).
		Preload("Creator").Preload("AssignedUser").
		Order("created_at DESC").Find(&items).Error
}

func (r *taskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).
		Preload("Creator").Preload("AssignedUser").
		Where("creator_id = ? OR assigned_user_id = ?", userID, userID).
		Order("created_at DESC").Find(&items).Error
}

// Accept is a single-statement update: last writer wins, no optimistic check.
func (r *taskRepo) Accept(ctx context.Context, taskID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"assigned_user_id": userID,
			"status_id":        model.StatusAccepted,
		})
	return res.RowsAffected, res.Error
}

// Refuse clears the assignee only when it matches userID, but always resets
// the status to Available.
func (r *taskRepo) Refuse(ctx context.Context, taskID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"assigned_user_id": gorm.Expr(
				"CASE WHEN assigned_user_id = ? THEN NULL ELSE assigned_user_id END", userID),
			"status_id": model.StatusAvailable,
		})
	return res.RowsAffected, res.Error
}

func (r *taskRepo) UpdateStatus(ctx context.Context, taskID uuid.UUID, status model.TaskStatus, note string) (int64, error) {
	values := map[string]interface{}{"status_id": status}
	if r.hasStatusNote && note != "" {
		values["status_note"] = note
	}
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).Updates(values)
	return res.RowsAffected, res.Error
}

// ListStartingBetween returns non-started tasks whose start_time falls in
// [from, to). Terminal and in-progress tasks get no reminders.
func (r *taskRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).
		Preload("Creator").Preload("AssignedUser").
		Where("status_id IN ?", []model.TaskStatus{model.StatusAvailable, model.StatusAccepted}).
		Where("start_time >= ? AND start_time < ?", from, to).
		Find(&items).Error
}

func (r *taskRepo) CreateAttachment(ctx context.Context, a *model.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *taskRepo) ListAttachments(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error) {
	var items []model.Attachment
	return items, r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").Find(&items).Error
}

package repo

import (
	"context"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	ExistsByDedup(ctx context.Context, profileID uuid.UUID, notifType string, taskID uuid.UUID, kind, role string) (bool, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Notification, error)
	CountUnread(ctx context.Context, profileID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, profileID uuid.UUID) error
	MarkRead(ctx context.Context, notificationID uuid.UUID) (int64, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ExistsByDedup matches on profile, type and the payload task_id/kind/role
// triple. Check-then-insert is not atomic against concurrent ticks; reminders
// are advisory so this is accepted.
func (r *notificationRepo) ExistsByDedup(ctx context.Context, profileID uuid.UUID, notifType string, taskID uuid.UUID, kind, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("profile_id = ? AND type = ?", profileID, notifType).
		Where("payload->>'task_id' = ?", taskID.String()).
		Where("payload->>'kind' = ?", kind).
		Where("payload->>'role' = ?", role).
		Count(&count).Error
	return count > 0, err
}

func (r *notificationRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Notification, error) {
	var items []model.Notification
	return items, r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").Find(&items).Error
}

func (r *notificationRepo) CountUnread(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("profile_id = ? AND is_read = false", profileID).
		Count(&count).Error
	return count, err
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, profileID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("profile_id = ? AND is_read = false", profileID).
		Update("is_read", true).Error
}

func (r *notificationRepo) MarkRead(ctx context.Context, notificationID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

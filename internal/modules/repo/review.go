package repo

import (
	"context"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepo interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Review, error)
	// AggregateForTarget scans all reviews targeting the user. A full
	// aggregate, not a running average, so concurrent inserts stay correct.
	AggregateForTarget(ctx context.Context, targetID uuid.UUID) (avg float64, count int64, err error)
}

type reviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *reviewRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Review, error) {
	var items []model.Review
	return items, r.db.WithContext(ctx).
		Preload("Author").Preload("Target").
		Where("task_id = ?", taskID).
		Order("created_at DESC").Find(&items).Error
}

func (r *reviewRepo) AggregateForTarget(ctx context.Context, targetID uuid.UUID) (float64, int64, error) {
	var out struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("target_id = ?", targetID).
		Scan(&out).Error
	return out.Avg, out.Count, err
}

package repo

import (
	"context"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateRating(ctx context.Context, profileID uuid.UUID, avg float64, count int) error
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where(&model.Profile{UserID: userID}).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) UpdateRating(ctx context.Context, profileID uuid.UUID, avg float64, count int) error {
	return r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", profileID).
		Updates(map[string]interface{}{"rtg_avg": avg, "rtg_count": count}).Error
}

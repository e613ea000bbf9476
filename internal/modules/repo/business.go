package repo

import (
	"context"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessRepo interface {
	Create(ctx context.Context, b *model.Business) error
	Get(ctx context.Context, id uuid.UUID) (*model.Business, error)
	List(ctx context.Context) ([]model.Business, error)
	Update(ctx context.Context, b *model.Business) (int64, error)
}

type businessRepo struct{ db *gorm.DB }

func NewBusinessRepo(db *gorm.DB) BusinessRepo {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, b *model.Business) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *businessRepo) Get(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	var b model.Business
	if err := r.db.WithContext(ctx).Where(&model.Business{ID: id}).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *businessRepo) List(ctx context.Context) ([]model.Business, error) {
	var items []model.Business
	return items, r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
}

func (r *businessRepo) Update(ctx context.Context, b *model.Business) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Business{}).Where("id = ?", b.ID).
		Updates(map[string]interface{}{"name": b.Name, "description": b.Description})
	return res.RowsAffected, res.Error
}

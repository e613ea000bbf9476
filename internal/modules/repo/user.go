package repo

import (
	"context"
	"time"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	MarkVerified(ctx context.Context, id uuid.UUID, verifyType string, at time.Time) error
}

type userRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		// every user gets a profile row; notifications hang off it
		return tx.Create(&model.Profile{UserID: u.ID, DisplayName: u.Name}).Error
	})
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where(&model.User{ID: id}).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).Limit(1).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var items []model.User
	return items, r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *userRepo) MarkVerified(ctx context.Context, id uuid.UUID, verifyType string, at time.Time) error {
	column := "email_verified_at"
	if verifyType == model.VerifyPhone {
		column = "phone_verified_at"
	}
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update(column, at).Error
}

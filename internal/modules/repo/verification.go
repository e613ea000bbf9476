package repo

import (
	"context"
	"time"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationRepo interface {
	Create(ctx context.Context, vc *model.VerificationCode) error
	// LatestActive returns the newest unconsumed, unexpired code for
	// (user, type), or gorm.ErrRecordNotFound.
	LatestActive(ctx context.Context, userID uuid.UUID, verifyType string, now time.Time) (*model.VerificationCode, error)
	Consume(ctx context.Context, id uuid.UUID, at time.Time) error
}

type verificationRepo struct{ db *gorm.DB }

func NewVerificationRepo(db *gorm.DB) VerificationRepo {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Create(ctx context.Context, vc *model.VerificationCode) error {
	return r.db.WithContext(ctx).Create(vc).Error
}

func (r *verificationRepo) LatestActive(ctx context.Context, userID uuid.UUID, verifyType string, now time.Time) (*model.VerificationCode, error) {
	var vc model.VerificationCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND consumed_at IS NULL AND expires_at > ?", userID, verifyType, now).
		Order("created_at DESC").Limit(1).First(&vc).Error
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (r *verificationRepo) Consume(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.VerificationCode{}).
		Where("id = ?", id).
		Update("consumed_at", at).Error
}

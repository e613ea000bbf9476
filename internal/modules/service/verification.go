package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
	"github.com/ajutor-app/ajutor/internal/pkg/utils"
)

type VerificationService interface {
	// SendCode issues a short-lived code for the target. The code is returned
	// to the caller directly: a development stand-in for real delivery.
	SendCode(ctx context.Context, userID uuid.UUID, verifyType, target string) (*model.VerificationCode, error)
	// CheckCode consumes the latest active code and stamps the user verified.
	CheckCode(ctx context.Context, userID uuid.UUID, verifyType, code string) error
}

type verificationService struct {
	r       repo.VerificationRepo
	users   repo.UserRepo
	codeLen int
	expiry  time.Duration
}

func NewVerificationService(r repo.VerificationRepo, users repo.UserRepo, codeLen int, expiry time.Duration) VerificationService {
	return &verificationService{r: r, users: users, codeLen: codeLen, expiry: expiry}
}

func (s *verificationService) SendCode(ctx context.Context, userID uuid.UUID, verifyType, target string) (*model.VerificationCode, error) {
	if verifyType == model.VerifyEmail && !emailRegex.MatchString(target) {
		return nil, apperr.Validation("invalid email")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	code, err := utils.GenerateDigitCode(s.codeLen)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	vc := &model.VerificationCode{
		UserID:    userID,
		Type:      verifyType,
		Target:    target,
		Code:      code,
		ExpiresAt: time.Now().Add(s.expiry),
	}
	if err := s.r.Create(ctx, vc); err != nil {
		return nil, fmt.Errorf("insert verification code: %w", err)
	}
	return vc, nil
}

func (s *verificationService) CheckCode(ctx context.Context, userID uuid.UUID, verifyType, code string) error {
	now := time.Now()

	entry, err := s.r.LatestActive(ctx, userID, verifyType, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validation("code expired or missing")
		}
		return fmt.Errorf("lookup code: %w", err)
	}
	if entry.Code != code {
		return apperr.Validation("invalid code")
	}

	if err := s.r.Consume(ctx, entry.ID, now); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if err := s.users.MarkVerified(ctx, userID, verifyType, now); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

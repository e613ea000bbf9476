package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

type BusinessService interface {
	Create(ctx context.Context, b *model.Business) error
	List(ctx context.Context) ([]model.Business, error)
	Update(ctx context.Context, b *model.Business) (*model.Business, error)
}

type businessService struct{ r repo.BusinessRepo }

func NewBusinessService(r repo.BusinessRepo) BusinessService {
	return &businessService{r: r}
}

func (s *businessService) Create(ctx context.Context, b *model.Business) error {
	if b.Name == "" {
		return apperr.Validation("name is required")
	}
	if b.OwnerID == uuid.Nil {
		return apperr.Validation("owner_id is required")
	}
	if err := s.r.Create(ctx, b); err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

func (s *businessService) List(ctx context.Context) ([]model.Business, error) {
	return s.r.List(ctx)
}

func (s *businessService) Update(ctx context.Context, b *model.Business) (*model.Business, error) {
	rows, err := s.r.Update(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("update business: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NotFound("business not found")
	}
	out, err := s.r.Get(ctx, b.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("business not found")
		}
		return nil, fmt.Errorf("reload business: %w", err)
	}
	return out, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

type SubmitReviewInput struct {
	TaskID   uuid.UUID
	AuthorID uuid.UUID
	Rating   int
	Comment  string
	// TargetID is optional; when present it must match the task's assignee.
	TargetID *uuid.UUID
}

type ReviewService interface {
	Submit(ctx context.Context, in SubmitReviewInput) (*model.Review, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Review, error)
}

type reviewService struct {
	r        repo.ReviewRepo
	tasks    repo.TaskRepo
	profiles repo.ProfileRepo
}

func NewReviewService(r repo.ReviewRepo, tasks repo.TaskRepo, profiles repo.ProfileRepo) ReviewService {
	return &reviewService{r: r, tasks: tasks, profiles: profiles}
}

func (s *reviewService) Submit(ctx context.Context, in SubmitReviewInput) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	task, err := s.tasks.Get(ctx, in.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, fmt.Errorf("load task: %w", err)
	}

	if task.StatusID != model.StatusCompleted {
		return nil, apperr.State("task is not completed")
	}
	if task.AssignedUserID == nil {
		return nil, apperr.State("task has no assigned user")
	}
	if task.CreatorID != in.AuthorID {
		return nil, apperr.Permission("only the task creator may leave a review")
	}

	// the target is always the assignee; a mismatching client value is rejected
	target := *task.AssignedUserID
	if in.TargetID != nil && *in.TargetID != target {
		return nil, apperr.Validation("target does not match the task assignee")
	}

	review := &model.Review{
		TaskID:   in.TaskID,
		AuthorID: in.AuthorID,
		TargetID: target,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := s.r.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("task already reviewed")
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	if err := s.recomputeRating(ctx, target); err != nil {
		return nil, err
	}
	return review, nil
}

// recomputeRating runs the full aggregate over every review targeting the
// user and writes it to their profile, rounded to 2 decimals.
func (s *reviewService) recomputeRating(ctx context.Context, targetID uuid.UUID) error {
	avg, count, err := s.r.AggregateForTarget(ctx, targetID)
	if err != nil {
		return fmt.Errorf("aggregate ratings: %w", err)
	}

	profile, err := s.profiles.GetByUserID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("load target profile: %w", err)
	}

	rounded := math.Round(avg*100) / 100
	if err := s.profiles.UpdateRating(ctx, profile.ID, rounded, int(count)); err != nil {
		return fmt.Errorf("update profile rating: %w", err)
	}
	return nil
}

func (s *reviewService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Review, error) {
	return s.r.ListByTask(ctx, taskID)
}

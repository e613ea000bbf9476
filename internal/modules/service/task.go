package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/infra/blob"
	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

// eventPublisher is what the task service needs from the queue layer.
type eventPublisher interface {
	PublishJSON(ctx context.Context, v interface{}) error
}

type CreateTaskInput struct {
	Title                    string
	Description              string
	CreatorID                uuid.UUID
	Price                    float64
	Lat                      *float64
	Lng                      *float64
	Address                  string
	City                     string
	County                   string
	Country                  string
	StartTime                *time.Time
	AutoAssignAt             *time.Time
	EstimatedDurationMinutes int
}

type AttachmentOut struct {
	model.Attachment
	URL string `json:"url"`
}

type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	Accept(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error)
	Refuse(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error)
	SetStatus(ctx context.Context, taskID uuid.UUID, statusID int, note string) (*model.Task, error)
	AddAttachment(ctx context.Context, taskID uuid.UUID, fh *multipart.FileHeader) (*model.Attachment, error)
	ListAttachments(ctx context.Context, taskID uuid.UUID, expire time.Duration) ([]AttachmentOut, error)
}

type taskService struct {
	r     repo.TaskRepo
	notif NotificationService
	pub   eventPublisher
	blob  *blob.S3Deps
	log   *zap.Logger
}

func NewTaskService(r repo.TaskRepo, notif NotificationService, pub eventPublisher, blob *blob.S3Deps, log *zap.Logger) TaskService {
	return &taskService{r: r, notif: notif, pub: pub, blob: blob, log: log}
}

func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if in.Title == "" {
		return nil, apperr.Validation("title is required")
	}
	if in.CreatorID == uuid.Nil {
		return nil, apperr.Validation("creator_id is required")
	}

	startTime := time.Now()
	if in.StartTime != nil {
		startTime = *in.StartTime
	}
	autoAssignAt := startTime
	if in.AutoAssignAt != nil {
		autoAssignAt = *in.AutoAssignAt
	}

	task := &model.Task{
		Title:                    in.Title,
		Description:              in.Description,
		CreatorID:                in.CreatorID,
		StatusID:                 model.StatusAvailable,
		Price:                    in.Price,
		Lat:                      in.Lat,
		Lng:                      in.Lng,
		Address:                  in.Address,
		City:                     in.City,
		County:                   in.County,
		Country:                  in.Country,
		StartTime:                startTime,
		AutoAssignAt:             autoAssignAt,
		EstimatedDurationMinutes: in.EstimatedDurationMinutes,
	}
	if err := s.r.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context) ([]model.Task, error) {
	return s.r.List(ctx)
}

func (s *taskService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("user id is required")
	}
	return s.r.ListByUser(ctx, userID)
}

// Accept assigns unconditionally: no guard against double-accept or
// self-accept, last writer wins.
func (s *taskService) Accept(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error) {
	rows, err := s.r.Accept(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("accept task: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NotFound("task not found")
	}

	task, err := s.r.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}

	s.dispatchAssigned(task)
	return task, nil
}

func (s *taskService) Refuse(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error) {
	rows, err := s.r.Refuse(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("refuse task: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NotFound("task not found")
	}
	task, err := s.r.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return task, nil
}

func (s *taskService) SetStatus(ctx context.Context, taskID uuid.UUID, statusID int, note string) (*model.Task, error) {
	status := model.TaskStatus(statusID)
	if !status.Valid() {
		return nil, apperr.Validationf("invalid status id %d", statusID)
	}

	rows, err := s.r.UpdateStatus(ctx, taskID, status, note)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NotFound("task not found")
	}
	task, err := s.r.Get(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return task, nil
}

// dispatchAssigned hands the assignment event to the notification side without
// blocking the accept response. Failures are logged, never surfaced.
func (s *taskService) dispatchAssigned(task *model.Task) {
	if task.AssignedUser == nil || task.Creator == nil {
		s.log.Sugar().Warnw("assignment event skipped, relations not loaded", "task_id", task.ID)
		return
	}

	ev := TaskAssignedEvent{
		TaskID:       task.ID,
		Title:        task.Title,
		CreatorID:    task.Creator.ID,
		CreatorName:  task.Creator.Name,
		AssigneeID:   task.AssignedUser.ID,
		AssigneeName: task.AssignedUser.Name,
	}

	go func() {
		// detached from the request context on purpose
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if s.pub != nil {
			err := s.pub.PublishJSON(ctx, ev)
			if err == nil {
				return
			}
			s.log.Sugar().Errorw("publish assignment event, falling back to direct emit",
				"task_id", ev.TaskID, "err", err)
		}
		if err := s.notif.HandleTaskAssigned(ctx, ev); err != nil {
			s.log.Sugar().Errorw("emit assignment notifications", "task_id", ev.TaskID, "err", err)
		}
	}()
}

func (s *taskService) AddAttachment(ctx context.Context, taskID uuid.UUID, fh *multipart.FileHeader) (*model.Attachment, error) {
	if _, err := s.r.Get(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, fmt.Errorf("load task: %w", err)
	}

	meta, err := s.blob.UploadFormFile(ctx, "tasks", fh)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	a := &model.Attachment{
		TaskID:   taskID,
		Bucket:   meta.Bucket,
		S3Key:    meta.Key,
		ETag:     meta.ETag,
		SHA256:   meta.SHA256,
		MIME:     meta.MIME,
		SizeB:    meta.SizeB,
		Filename: fh.Filename,
	}
	if err := s.r.CreateAttachment(ctx, a); err != nil {
		return nil, fmt.Errorf("insert attachment: %w", err)
	}
	return a, nil
}

func (s *taskService) ListAttachments(ctx context.Context, taskID uuid.UUID, expire time.Duration) ([]AttachmentOut, error) {
	items, err := s.r.ListAttachments(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	out := make([]AttachmentOut, 0, len(items))
	for _, a := range items {
		url, err := s.blob.PresignGet(ctx, a.S3Key, expire)
		if err != nil {
			s.log.Sugar().Warnw("presign attachment", "attachment_id", a.ID, "err", err)
		}
		out = append(out, AttachmentOut{Attachment: a, URL: url})
	}
	return out, nil
}

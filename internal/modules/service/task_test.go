package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()

	tests := []struct {
		name    string
		in      CreateTaskInput
		setup   func(*MockTaskRepo)
		wantErr string
	}{
		{
			name:    "missing title",
			in:      CreateTaskInput{CreatorID: creatorID},
			setup:   func(r *MockTaskRepo) {},
			wantErr: "title is required",
		},
		{
			name:    "missing creator",
			in:      CreateTaskInput{Title: "Mow the lawn"},
			setup:   func(r *MockTaskRepo) {},
			wantErr: "creator_id is required",
		},
		{
			name: "successful creation",
			in:   CreateTaskInput{Title: "Mow the lawn", CreatorID: creatorID, Price: 50},
			setup: func(r *MockTaskRepo) {
				r.On("Create", ctx, mock.AnythingOfType("*model.Task")).Return(nil)
			},
		},
		{
			name: "insert failure",
			in:   CreateTaskInput{Title: "Mow the lawn", CreatorID: creatorID},
			setup: func(r *MockTaskRepo) {
				r.On("Create", ctx, mock.AnythingOfType("*model.Task")).Return(errors.New("database error"))
			},
			wantErr: "insert task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockTaskRepo{}
			tt.setup(repo)
			svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())

			task, err := svc.Create(ctx, tt.in)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusAvailable, task.StatusID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Create_Defaults(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(2 * time.Hour)

	repo := &MockTaskRepo{}
	var captured *model.Task
	repo.On("Create", ctx, mock.AnythingOfType("*model.Task")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*model.Task) }).
		Return(nil)

	svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())

	_, err := svc.Create(ctx, CreateTaskInput{
		Title:     "Walk the dog",
		CreatorID: uuid.New(),
		StartTime: &start,
	})
	assert.NoError(t, err)
	assert.Equal(t, start, captured.StartTime)
	// auto-assign falls back to the start time when not given
	assert.Equal(t, start, captured.AutoAssignAt)
}

func TestTaskService_Accept(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	userID := uuid.New()

	t.Run("task not found", func(t *testing.T) {
		repo := &MockTaskRepo{}
		repo.On("Accept", ctx, taskID, userID).Return(int64(0), nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		_, err := svc.Accept(ctx, taskID, userID)

		assert.Error(t, err)
		var ex *apperr.Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, 404, ex.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("successful accept", func(t *testing.T) {
		repo := &MockTaskRepo{}
		repo.On("Accept", ctx, taskID, userID).Return(int64(1), nil)
		// relations not loaded here, so the assignment event is skipped
		repo.On("Get", ctx, taskID).Return(&model.Task{
			ID:             taskID,
			StatusID:       model.StatusAccepted,
			AssignedUserID: &userID,
		}, nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		task, err := svc.Accept(ctx, taskID, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, task.StatusID)
		assert.Equal(t, userID, *task.AssignedUserID)
		repo.AssertExpectations(t)
	})
}

func TestTaskService_Accept_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	creator := model.User{ID: uuid.New(), Name: "Ana"}
	assignee := model.User{ID: uuid.New(), Name: "Radu"}

	repo := &MockTaskRepo{}
	repo.On("Accept", ctx, taskID, assignee.ID).Return(int64(1), nil)
	repo.On("Get", ctx, taskID).Return(&model.Task{
		ID:             taskID,
		Title:          "Fix the fence",
		CreatorID:      creator.ID,
		AssignedUserID: &assignee.ID,
		Creator:        &creator,
		AssignedUser:   &assignee,
	}, nil)

	published := make(chan struct{})
	pub := &MockPublisher{}
	pub.On("PublishJSON", mock.Anything, mock.AnythingOfType("service.TaskAssignedEvent")).
		Run(func(mock.Arguments) { close(published) }).
		Return(nil)

	svc := NewTaskService(repo, &MockNotificationService{}, pub, nil, zap.NewNop())
	_, err := svc.Accept(ctx, taskID, assignee.ID)
	assert.NoError(t, err)

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("assignment event was never published")
	}

	ev := pub.Calls[0].Arguments.Get(1).(TaskAssignedEvent)
	assert.Equal(t, taskID, ev.TaskID)
	assert.Equal(t, creator.ID, ev.CreatorID)
	assert.Equal(t, assignee.ID, ev.AssigneeID)
}

func TestTaskService_Accept_FallsBackToDirectEmit(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	creator := model.User{ID: uuid.New(), Name: "Ana"}
	assignee := model.User{ID: uuid.New(), Name: "Radu"}

	repo := &MockTaskRepo{}
	repo.On("Accept", ctx, taskID, assignee.ID).Return(int64(1), nil)
	repo.On("Get", ctx, taskID).Return(&model.Task{
		ID:             taskID,
		CreatorID:      creator.ID,
		AssignedUserID: &assignee.ID,
		Creator:        &creator,
		AssignedUser:   &assignee,
	}, nil)

	pub := &MockPublisher{}
	pub.On("PublishJSON", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	emitted := make(chan struct{})
	notif := &MockNotificationService{}
	notif.On("HandleTaskAssigned", mock.Anything, mock.AnythingOfType("service.TaskAssignedEvent")).
		Run(func(mock.Arguments) { close(emitted) }).
		Return(nil)

	svc := NewTaskService(repo, notif, pub, nil, zap.NewNop())
	_, err := svc.Accept(ctx, taskID, assignee.ID)
	assert.NoError(t, err)

	select {
	case <-emitted:
	case <-time.After(2 * time.Second):
		t.Fatal("direct emit fallback never happened")
	}
}

func TestTaskService_Refuse(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()
	userID := uuid.New()

	t.Run("task not found", func(t *testing.T) {
		repo := &MockTaskRepo{}
		repo.On("Refuse", ctx, taskID, userID).Return(int64(0), nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		_, err := svc.Refuse(ctx, taskID, userID)

		var ex *apperr.Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, 404, ex.StatusCode)
	})

	t.Run("refuse resets to available", func(t *testing.T) {
		repo := &MockTaskRepo{}
		repo.On("Refuse", ctx, taskID, userID).Return(int64(1), nil)
		repo.On("Get", ctx, taskID).Return(&model.Task{
			ID:       taskID,
			StatusID: model.StatusAvailable,
		}, nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		task, err := svc.Refuse(ctx, taskID, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusAvailable, task.StatusID)
		assert.Nil(t, task.AssignedUserID)
	})
}

func TestTaskService_SetStatus(t *testing.T) {
	ctx := context.Background()
	taskID := uuid.New()

	t.Run("invalid status id", func(t *testing.T) {
		svc := NewTaskService(&MockTaskRepo{}, &MockNotificationService{}, nil, nil, zap.NewNop())
		_, err := svc.SetStatus(ctx, taskID, 42, "")

		var ex *apperr.Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, 400, ex.StatusCode)
	})

	t.Run("task not found", func(t *testing.T) {
		repo := &MockTaskRepo{}
		repo.On("UpdateStatus", ctx, taskID, model.StatusCompleted, "").Return(int64(0), nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		_, err := svc.SetStatus(ctx, taskID, int(model.StatusCompleted), "")

		var ex *apperr.Exception
		assert.ErrorAs(t, err, &ex)
		assert.Equal(t, 404, ex.StatusCode)
	})

	t.Run("status updated with note", func(t *testing.T) {
		repo := &MockTaskRepo{}
		repo.On("UpdateStatus", ctx, taskID, model.StatusInProgress, "on my way").Return(int64(1), nil)
		repo.On("Get", ctx, taskID).Return(&model.Task{ID: taskID, StatusID: model.StatusInProgress}, nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		task, err := svc.SetStatus(ctx, taskID, int(model.StatusInProgress), "on my way")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, task.StatusID)
		repo.AssertExpectations(t)
	})
}

func TestTaskService_ListMine(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user id", func(t *testing.T) {
		svc := NewTaskService(&MockTaskRepo{}, &MockNotificationService{}, nil, nil, zap.NewNop())
		_, err := svc.ListMine(ctx, uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("returns the user's tasks", func(t *testing.T) {
		userID := uuid.New()
		repo := &MockTaskRepo{}
		repo.On("ListByUser", ctx, userID).Return([]model.Task{{Title: "a"}, {Title: "b"}}, nil)

		svc := NewTaskService(repo, &MockNotificationService{}, nil, nil, zap.NewNop())
		tasks, err := svc.ListMine(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, tasks, 2)
	})
}

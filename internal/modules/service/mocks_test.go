package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ajutor-app/ajutor/internal/modules/model"
)

// MockTaskRepo is a mock implementation of repo.TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) Accept(ctx context.Context, taskID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepo) Refuse(ctx context.Context, taskID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepo) UpdateStatus(ctx context.Context, taskID uuid.UUID, status model.TaskStatus, note string) (int64, error) {
	args := m.Called(ctx, taskID, status, note)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) CreateAttachment(ctx context.Context, a *model.Attachment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockTaskRepo) ListAttachments(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

// MockNotificationRepo is a mock implementation of repo.NotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) ExistsByDedup(ctx context.Context, profileID uuid.UUID, notifType string, taskID uuid.UUID, kind, role string) (bool, error) {
	args := m.Called(ctx, profileID, notifType, taskID, kind, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepo) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, profileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, notificationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, notificationID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfileRepo is a mock implementation of repo.ProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepo) UpdateRating(ctx context.Context, profileID uuid.UUID, avg float64, count int) error {
	args := m.Called(ctx, profileID, avg, count)
	return args.Error(0)
}

// MockReviewRepo is a mock implementation of repo.ReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepo) AggregateForTarget(ctx context.Context, targetID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, targetID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) EmitForUser(ctx context.Context, userID uuid.UUID, notifType string, payload map[string]interface{}) error {
	args := m.Called(ctx, userID, notifType, payload)
	return args.Error(0)
}

func (m *MockNotificationService) EmitOnceForUser(ctx context.Context, userID uuid.UUID, notifType string, payload map[string]interface{}, dedup DedupKey) (bool, error) {
	args := m.Called(ctx, userID, notifType, payload, dedup)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationService) HandleTaskAssigned(ctx context.Context, ev TaskAssignedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

// MockPublisher is a mock implementation of the event publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, v interface{}) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

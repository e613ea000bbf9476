package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ajutor-app/ajutor/internal/modules/model"
)

func TestReminderScheduler_Scan_AssignedTask(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	creatorID := uuid.New()
	assigneeID := uuid.New()

	// starting in 57 minutes: inside the 1h window, outside the 45m window
	task := model.Task{
		ID:             uuid.New(),
		Title:          "Fix the fence",
		CreatorID:      creatorID,
		AssignedUserID: &assigneeID,
		StartTime:      now.Add(57 * time.Minute),
	}

	tasks := &MockTaskRepo{}
	tasks.On("ListStartingBetween", ctx, now.Add(55*time.Minute), now.Add(60*time.Minute)).
		Return([]model.Task{task}, nil)
	tasks.On("ListStartingBetween", ctx, now.Add(40*time.Minute), now.Add(45*time.Minute)).
		Return([]model.Task{}, nil)

	notif := &MockNotificationService{}
	notif.On("EmitOnceForUser", ctx, assigneeID, model.NotificationTaskReminder, mock.Anything,
		DedupKey{TaskID: task.ID, Kind: ReminderKind1h, Role: RoleAssignee}).Return(true, nil)
	notif.On("EmitOnceForUser", ctx, creatorID, model.NotificationTaskReminder, mock.Anything,
		DedupKey{TaskID: task.ID, Kind: ReminderKind1h, Role: RoleCreator}).Return(true, nil)

	s := NewReminderScheduler(tasks, notif, zap.NewNop(), time.Minute)
	s.Scan(ctx, now)

	notif.AssertExpectations(t)
	notif.AssertNumberOfCalls(t, "EmitOnceForUser", 2)
}

func TestReminderScheduler_Scan_RepeatTickIsDeduplicated(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	assigneeID := uuid.New()

	task := model.Task{
		ID:             uuid.New(),
		CreatorID:      uuid.New(),
		AssignedUserID: &assigneeID,
		StartTime:      now.Add(57 * time.Minute),
	}

	tasks := &MockTaskRepo{}
	tasks.On("ListStartingBetween", ctx, mock.Anything, mock.Anything).
		Return([]model.Task{task}, nil).Twice()
	tasks.On("ListStartingBetween", ctx, mock.Anything, mock.Anything).
		Return([]model.Task{}, nil)

	// the dedup layer reports every emit as already present
	notif := &MockNotificationService{}
	notif.On("EmitOnceForUser", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)

	s := NewReminderScheduler(tasks, notif, zap.NewNop(), time.Minute)
	s.Scan(ctx, now)

	// both windows saw the task; dedup swallowed every emission without error
	notif.AssertNumberOfCalls(t, "EmitOnceForUser", 4)
}

func TestReminderScheduler_Scan_UnassignedTask(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	creatorID := uuid.New()

	task := model.Task{
		ID:        uuid.New(),
		Title:     "Walk the dog",
		CreatorID: creatorID,
		StartTime: now.Add(58 * time.Minute),
	}

	tasks := &MockTaskRepo{}
	tasks.On("ListStartingBetween", ctx, now.Add(55*time.Minute), now.Add(60*time.Minute)).
		Return([]model.Task{task}, nil)
	tasks.On("ListStartingBetween", ctx, now.Add(40*time.Minute), now.Add(45*time.Minute)).
		Return([]model.Task{}, nil)

	notif := &MockNotificationService{}
	notif.On("EmitOnceForUser", ctx, creatorID, model.NotificationUnassignedWarning, mock.Anything,
		DedupKey{TaskID: task.ID, Kind: ReminderKind1h, Role: RoleCreator}).Return(true, nil)

	s := NewReminderScheduler(tasks, notif, zap.NewNop(), time.Minute)
	s.Scan(ctx, now)

	notif.AssertExpectations(t)
	notif.AssertNumberOfCalls(t, "EmitOnceForUser", 1)
}

func TestReminderScheduler_Scan_UnassignedTaskInLateWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	task := model.Task{
		ID:        uuid.New(),
		CreatorID: uuid.New(),
		StartTime: now.Add(42 * time.Minute),
	}

	tasks := &MockTaskRepo{}
	tasks.On("ListStartingBetween", ctx, now.Add(55*time.Minute), now.Add(60*time.Minute)).
		Return([]model.Task{}, nil)
	tasks.On("ListStartingBetween", ctx, now.Add(40*time.Minute), now.Add(45*time.Minute)).
		Return([]model.Task{task}, nil)

	// no 45m warning for unassigned tasks
	notif := &MockNotificationService{}

	s := NewReminderScheduler(tasks, notif, zap.NewNop(), time.Minute)
	s.Scan(ctx, now)

	notif.AssertNotCalled(t, "EmitOnceForUser",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	tasks := &MockTaskRepo{}
	tasks.On("ListStartingBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]model.Task{}, nil)

	s := NewReminderScheduler(tasks, &MockNotificationService{}, zap.NewNop(), 10*time.Millisecond)
	s.Start(context.Background())

	time.Sleep(30 * time.Millisecond)
	s.Stop()
	// a second Stop does not panic or hang
	s.Stop()
}

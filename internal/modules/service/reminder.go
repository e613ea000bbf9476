package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
)

// Reminder windows. Each is sized to the scan interval so a task is caught
// exactly once per window under normal operation.
const (
	ReminderKind1h  = "1h"
	ReminderKind45m = "45m"

	RoleAssignee = "assignee"
	RoleCreator  = "creator"
)

type reminderWindow struct {
	kind string
	from time.Duration
	to   time.Duration
}

var reminderWindows = []reminderWindow{
	{kind: ReminderKind1h, from: 55 * time.Minute, to: 60 * time.Minute},
	{kind: ReminderKind45m, from: 40 * time.Minute, to: 45 * time.Minute},
}

// ReminderScheduler periodically scans for tasks approaching their start time
// and emits deduplicated reminders. It owns its lifecycle and talks to the
// rest of the system only through the store and the emitter.
type ReminderScheduler struct {
	tasks    repo.TaskRepo
	notif    NotificationService
	log      *zap.Logger
	interval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewReminderScheduler(tasks repo.TaskRepo, notif NotificationService, log *zap.Logger, interval time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		tasks:    tasks,
		notif:    notif,
		log:      log,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the tick loop on its own goroutine until Stop or ctx cancel.
func (s *ReminderScheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				// a failed tick is logged inside Scan and never stops the loop
				s.Scan(ctx, time.Now())
			}
		}
	}()
}

// Stop halts the loop and waits for the in-flight tick to finish.
func (s *ReminderScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Scan walks each reminder window once. Exported so a tick can be driven
// directly in tests and one-shot tools.
func (s *ReminderScheduler) Scan(ctx context.Context, now time.Time) {
	for _, w := range reminderWindows {
		tasks, err := s.tasks.ListStartingBetween(ctx, now.Add(w.from), now.Add(w.to))
		if err != nil {
			s.log.Sugar().Errorw("reminder scan", "window", w.kind, "err", err)
			continue
		}
		for i := range tasks {
			s.remind(ctx, &tasks[i], w.kind)
		}
	}
}

func (s *ReminderScheduler) remind(ctx context.Context, task *model.Task, kind string) {
	if task.AssignedUserID != nil {
		s.emitOnce(ctx, *task.AssignedUserID, model.NotificationTaskReminder, task, kind, RoleAssignee)
		s.emitOnce(ctx, task.CreatorID, model.NotificationTaskReminder, task, kind, RoleCreator)
		return
	}

	// unassigned tasks only warn the creator, and only at the 1h mark:
	// a 45m warning this close to start would just be noise
	if kind == ReminderKind1h {
		s.emitOnce(ctx, task.CreatorID, model.NotificationUnassignedWarning, task, kind, RoleCreator)
	}
}

func (s *ReminderScheduler) emitOnce(ctx context.Context, userID uuid.UUID, notifType string, task *model.Task, kind, role string) {
	payload := map[string]interface{}{
		model.PayloadTaskID: task.ID.String(),
		"title":             task.Title,
		model.PayloadKind:   kind,
		model.PayloadRole:   role,
	}
	_, err := s.notif.EmitOnceForUser(ctx, userID, notifType, payload, DedupKey{
		TaskID: task.ID,
		Kind:   kind,
		Role:   role,
	})
	if err != nil {
		s.log.Sugar().Errorw("emit reminder",
			"task_id", task.ID, "kind", kind, "role", role, "err", err)
	}
}

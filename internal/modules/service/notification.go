package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

// DedupKey identifies one reminder per (task, window, role); EmitOnce persists
// at most one notification for it across scheduler ticks and restarts.
type DedupKey struct {
	TaskID uuid.UUID
	Kind   string
	Role   string
}

type NotificationService interface {
	// EmitForUser inserts an unread notification for the profile owned by userID.
	EmitForUser(ctx context.Context, userID uuid.UUID, notifType string, payload map[string]interface{}) error
	// EmitOnceForUser is EmitForUser guarded by the dedup key; it reports
	// whether a row was created.
	EmitOnceForUser(ctx context.Context, userID uuid.UUID, notifType string, payload map[string]interface{}, dedup DedupKey) (bool, error)
	// HandleTaskAssigned notifies both sides of an assignment.
	HandleTaskAssigned(ctx context.Context, ev TaskAssignedEvent) error

	List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
}

type notificationService struct {
	r         repo.NotificationRepo
	profiles  repo.ProfileRepo
	rdb       *redis.Client
	log       *zap.Logger
	unreadTTL time.Duration
}

func NewNotificationService(r repo.NotificationRepo, profiles repo.ProfileRepo, rdb *redis.Client, log *zap.Logger, unreadTTL time.Duration) NotificationService {
	return &notificationService{
		r:         r,
		profiles:  profiles,
		rdb:       rdb,
		log:       log,
		unreadTTL: unreadTTL,
	}
}

func (s *notificationService) resolveProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, fmt.Errorf("resolve profile: %w", err)
	}
	return p, nil
}

func (s *notificationService) EmitForUser(ctx context.Context, userID uuid.UUID, notifType string, payload map[string]interface{}) error {
	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return err
	}

	n := model.Notification{
		ProfileID: profile.ID,
		Type:      notifType,
		Payload:   datatypes.JSONMap(payload),
	}
	if err := s.r.Create(ctx, &n); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *notificationService) EmitOnceForUser(ctx context.Context, userID uuid.UUID, notifType string, payload map[string]interface{}, dedup DedupKey) (bool, error) {
	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return false, err
	}

	exists, err := s.r.ExistsByDedup(ctx, profile.ID, notifType, dedup.TaskID, dedup.Kind, dedup.Role)
	if err != nil {
		return false, fmt.Errorf("dedup lookup: %w", err)
	}
	if exists {
		return false, nil
	}

	n := model.Notification{
		ProfileID: profile.ID,
		Type:      notifType,
		Payload:   datatypes.JSONMap(payload),
	}
	if err := s.r.Create(ctx, &n); err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}

	s.invalidateUnread(ctx, userID)
	return true, nil
}

func (s *notificationService) HandleTaskAssigned(ctx context.Context, ev TaskAssignedEvent) error {
	// creator learns the task was accepted
	if err := s.EmitForUser(ctx, ev.CreatorID, model.NotificationTaskAccepted, map[string]interface{}{
		model.PayloadTaskID: ev.TaskID.String(),
		"title":             ev.Title,
		"counterpart_id":    ev.AssigneeID.String(),
		"counterpart_name":  ev.AssigneeName,
	}); err != nil {
		return err
	}

	// assignee learns the task is theirs
	return s.EmitForUser(ctx, ev.AssigneeID, model.NotificationTaskAssigned, map[string]interface{}{
		model.PayloadTaskID: ev.TaskID.String(),
		"title":             ev.Title,
		"counterpart_id":    ev.CreatorID.String(),
		"counterpart_name":  ev.CreatorName,
	})
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.r.ListByProfile(ctx, profile.ID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, unreadKey(userID)).Result(); err == nil {
			if n, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return n, nil
			}
		}
	}

	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	count, err := s.r.CountUnread(ctx, profile.ID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, unreadKey(userID), count, s.unreadTTL).Err(); err != nil {
			s.log.Sugar().Warnw("cache unread count", "user_id", userID, "err", err)
		}
	}
	return count, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.r.MarkAllRead(ctx, profile.ID); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	rows, err := s.r.MarkRead(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("notification not found")
	}
	// The owning user is unknown here; the cached count self-expires.
	return nil
}

func (s *notificationService) invalidateUnread(ctx context.Context, userID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, unreadKey(userID)).Err(); err != nil {
		s.log.Sugar().Warnw("invalidate unread count", "user_id", userID, "err", err)
	}
}

func unreadKey(userID uuid.UUID) string {
	return "notifications:unread:" + userID.String()
}

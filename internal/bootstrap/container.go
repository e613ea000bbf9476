package bootstrap

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/config"
	"github.com/ajutor-app/ajutor/internal/infra/blob"
	"github.com/ajutor-app/ajutor/internal/infra/cache"
	"github.com/ajutor-app/ajutor/internal/infra/db"
	"github.com/ajutor-app/ajutor/internal/infra/logger"
	"github.com/ajutor-app/ajutor/internal/infra/queue"
	"github.com/ajutor-app/ajutor/internal/modules/handler"
	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/repo"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.User{},
				&model.Profile{},
				&model.Business{},
				&model.Task{},
				&model.Attachment{},
				&model.Notification{},
				&model.Review{},
				&model.VerificationCode{},
			)
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Redis.Addr == "" {
			return nil, nil
		}
		return cache.New(cfg), nil
	})

	// RabbitMQ connection, optional: the accept flow falls back to a direct
	// emit when no broker is configured
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.Provide(inj, func(i *do.Injector) (*queue.Publisher, error) {
		conn := do.MustInvoke[*amqp.Connection](i)
		if conn == nil {
			return nil, nil
		}
		cfg := do.MustInvoke[*config.Config](i)
		return queue.NewPublisher(conn, cfg.RabbitMQ.Queue, do.MustInvoke[*zap.Logger](i))
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})
	// get presign expire duration
	do.Provide(inj, func(i *do.Injector) (func() time.Duration, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() time.Duration {
			if cfg.S3.PresignExpireSec <= 0 {
				return 15 * time.Minute
			}
			return time.Duration(cfg.S3.PresignExpireSec) * time.Second
		}, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProfileRepo, error) {
		return repo.NewProfileRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.BusinessRepo, error) {
		return repo.NewBusinessRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ReviewRepo, error) {
		return repo.NewReviewRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.VerificationRepo, error) {
		return repo.NewVerificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(do.MustInvoke[repo.UserRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.BusinessService, error) {
		return service.NewBusinessService(do.MustInvoke[repo.BusinessRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.VerificationService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewVerificationService(
			do.MustInvoke[repo.VerificationRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			cfg.Verify.CodeLength,
			time.Duration(cfg.Verify.ExpiresMinutes)*time.Minute,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewNotificationService(
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[*zap.Logger](i),
			time.Duration(cfg.Redis.UnreadTTLSec)*time.Second,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		pub := do.MustInvoke[*queue.Publisher](i)
		notif := do.MustInvoke[service.NotificationService](i)
		tasks := do.MustInvoke[repo.TaskRepo](i)
		s3 := do.MustInvoke[*blob.S3Deps](i)
		log := do.MustInvoke[*zap.Logger](i)
		if pub == nil {
			// a typed nil pointer would defeat the nil check inside
			return service.NewTaskService(tasks, notif, nil, s3, log), nil
		}
		return service.NewTaskService(tasks, notif, pub, s3, log), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReviewService, error) {
		return service.NewReviewService(
			do.MustInvoke[repo.ReviewRepo](i),
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.ProfileRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*service.ReminderScheduler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewReminderScheduler(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[service.NotificationService](i),
			do.MustInvoke[*zap.Logger](i),
			time.Duration(cfg.Reminder.IntervalSec)*time.Second,
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.VerifyHandler, error) {
		return handler.NewVerifyHandler(do.MustInvoke[service.VerificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(
			do.MustInvoke[service.TaskService](i),
			do.MustInvoke[func() time.Duration](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ReviewHandler, error) {
		return handler.NewReviewHandler(do.MustInvoke[service.ReviewService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.BusinessHandler, error) {
		return handler.NewBusinessHandler(do.MustInvoke[service.BusinessService](i)), nil
	})

	return inj
}

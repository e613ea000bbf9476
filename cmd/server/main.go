package main

//	@title			Ajutor API
//	@version		1.0
//	@description	Task marketplace backend: tasks, reviews, notifications, reminders.
//	@schemes		http https
//	@BasePath		/

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/bootstrap"
	"github.com/ajutor-app/ajutor/internal/config"
	"github.com/ajutor-app/ajutor/internal/infra/cache"
	dbpkg "github.com/ajutor-app/ajutor/internal/infra/db"
	"github.com/ajutor-app/ajutor/internal/infra/queue"
	"github.com/ajutor-app/ajutor/internal/modules/handler"
	"github.com/ajutor-app/ajutor/internal/modules/service"
	"github.com/ajutor-app/ajutor/internal/router"
	"github.com/ajutor-app/ajutor/internal/telemetry"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	// Setup OpenTelemetry tracing (using configuration system)
	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if tp != nil {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				log.Sugar().Errorw("failed to shutdown tracer", "err", err)
			}
		}()

		// Register GORM OpenTelemetry plugin after tracer provider is set
		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin, continuing without database tracing", "err", err)
		} else {
			log.Sugar().Info("GORM OpenTelemetry plugin registered")
		}

		// Register Redis OpenTelemetry plugin after tracer provider is set
		if rdb != nil {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin, continuing without Redis tracing", "err", err)
			} else {
				log.Sugar().Info("Redis OpenTelemetry plugin registered")
			}
		}
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// drain assignment events when a broker is configured
	notif := do.MustInvoke[service.NotificationService](inj)
	if conn := do.MustInvoke[*amqp.Connection](inj); conn != nil {
		consumer := queue.NewConsumer(conn, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch, log)
		err := consumer.Start(rootCtx, func(ctx context.Context, body []byte) error {
			var ev service.TaskAssignedEvent
			if err := sonic.Unmarshal(body, &ev); err != nil {
				log.Sugar().Errorw("malformed assignment event dropped", "err", err)
				return nil
			}
			return notif.HandleTaskAssigned(ctx, ev)
		})
		if err != nil {
			log.Sugar().Fatalw("failed to start event consumer", "err", err)
		}
	}

	// periodic reminder scan
	scheduler := do.MustInvoke[*service.ReminderScheduler](inj)
	scheduler.Start(rootCtx)
	defer scheduler.Stop()

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		DB:                  db,
		Log:                 log,
		UserHandler:         do.MustInvoke[*handler.UserHandler](inj),
		VerifyHandler:       do.MustInvoke[*handler.VerifyHandler](inj),
		TaskHandler:         do.MustInvoke[*handler.TaskHandler](inj),
		ReviewHandler:       do.MustInvoke[*handler.ReviewHandler](inj),
		NotificationHandler: do.MustInvoke[*handler.NotificationHandler](inj),
		BusinessHandler:     do.MustInvoke[*handler.BusinessHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	rootCancel()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}

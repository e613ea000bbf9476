package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ajutor-app/ajutor/internal/config"
	"github.com/ajutor-app/ajutor/internal/middleware"
	"github.com/ajutor-app/ajutor/internal/modules/handler"
	"github.com/ajutor-app/ajutor/internal/modules/serializer"
)

type RouterDeps struct {
	Config              *config.Config
	DB                  *gorm.DB
	Log                 *zap.Logger
	UserHandler         *handler.UserHandler
	VerifyHandler       *handler.VerifyHandler
	TaskHandler         *handler.TaskHandler
	ReviewHandler       *handler.ReviewHandler
	NotificationHandler *handler.NotificationHandler
	BusinessHandler     *handler.BusinessHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health: a cheap round trip to the database
	r.GET("/", func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, serializer.Err(http.StatusServiceUnavailable, "database unreachable", err))
			return
		}
		c.JSON(http.StatusOK, serializer.Response{Msg: "ok"})
	})

	users := r.Group("/users")
	{
		users.POST("", d.UserHandler.CreateUser)
		users.GET("", d.UserHandler.GetUsers)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", d.UserHandler.CreateUser)
		auth.POST("/login", d.UserHandler.Login)
		auth.POST("/reset-password", d.UserHandler.ResetPassword)
	}

	verify := r.Group("/verify")
	{
		verify.POST("/send-email", d.VerifyHandler.SendEmailCode)
		verify.POST("/check-email", d.VerifyHandler.CheckEmailCode)
		verify.POST("/send-phone", d.VerifyHandler.SendPhoneCode)
		verify.POST("/check-phone", d.VerifyHandler.CheckPhoneCode)
	}

	tasks := r.Group("/tasks")
	{
		tasks.POST("", d.TaskHandler.CreateTask)
		tasks.GET("", d.TaskHandler.GetTasks)
		tasks.GET("/my/:userId", d.TaskHandler.GetMyTasks)

		tasks.POST("/:id/accept", d.TaskHandler.AcceptTask)
		tasks.POST("/:id/refuse", d.TaskHandler.RefuseTask)
		tasks.POST("/:id/status", d.TaskHandler.SetTaskStatus)

		tasks.POST("/:id/reviews", d.ReviewHandler.SubmitReview)
		tasks.GET("/:id/reviews", d.ReviewHandler.GetReviews)

		tasks.POST("/:id/attachments", d.TaskHandler.UploadAttachment)
		tasks.GET("/:id/attachments", d.TaskHandler.GetAttachments)
	}

	// the :id segment is a user id for listing routes and a notification id for
	// the single mark-read route; gin requires one wildcard name per position
	notifications := r.Group("/notifications")
	{
		notifications.GET("/:id", d.NotificationHandler.GetNotifications)
		notifications.GET("/:id/unread-count", d.NotificationHandler.GetUnreadCount)
		notifications.POST("/:id/mark-read", d.NotificationHandler.MarkAllRead)
		notifications.POST("/:id/read", d.NotificationHandler.MarkRead)
	}

	businesses := r.Group("/businesses")
	{
		businesses.POST("", d.BusinessHandler.CreateBusiness)
		businesses.GET("", d.BusinessHandler.GetBusinesses)
		businesses.PUT("/:id", d.BusinessHandler.UpdateBusiness)
	}

	return r
}

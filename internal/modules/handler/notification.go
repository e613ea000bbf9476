package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

// GetNotifications godoc
//
//	@Summary	List a user's notifications, newest first
//	@Tags		notification
//	@Produce	json
//	@Param		id	path		string	true	"User ID"	format(uuid)
//	@Success	200		{object}	serializer.Response{data=[]model.Notification}
//	@Router		/notifications/{id} [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: items})
}

type UnreadCountResp struct {
	Count int64 `json:"count"`
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	count, err := h.svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: UnreadCountResp{Count: count}})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), notificationID); err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{})
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

type TaskHandler struct {
	svc           service.TaskService
	presignExpire func() time.Duration
}

func NewTaskHandler(s service.TaskService, presignExpire func() time.Duration) *TaskHandler {
	return &TaskHandler{svc: s, presignExpire: presignExpire}
}

type CreateTaskReq struct {
	Title                    string     `json:"title"`
	Description              string     `json:"description"`
	CreatorID                string     `json:"creator_id"`
	Price                    float64    `json:"price"`
	Lat                      *float64   `json:"lat"`
	Lng                      *float64   `json:"lng"`
	Address                  string     `json:"address"`
	City                     string     `json:"city"`
	County                   string     `json:"county"`
	Country                  string     `json:"country"`
	StartTime                *time.Time `json:"start_time"`
	AutoAssignAt             *time.Time `json:"auto_assign_at"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes"`
}

// CreateTask godoc
//
//	@Summary	Post a new task
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CreateTaskReq	true	"CreateTask payload"
//	@Success	201		{object}	serializer.Response{data=serializer.TaskView}
//	@Router		/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.CreateTaskInput{
		Title:                    req.Title,
		Description:              req.Description,
		Price:                    req.Price,
		Lat:                      req.Lat,
		Lng:                      req.Lng,
		Address:                  req.Address,
		City:                     req.City,
		County:                   req.County,
		Country:                  req.Country,
		StartTime:                req.StartTime,
		AutoAssignAt:             req.AutoAssignAt,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
	}
	if req.CreatorID != "" {
		creatorID, err := uuid.Parse(req.CreatorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid creator_id", err))
			return
		}
		in.CreatorID = creatorID
	}

	task, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.BuildTask(task)})
}

// GetTasks godoc
//
//	@Summary	List all tasks, decorated with creator/assignee/location names
//	@Tags		task
//	@Produce	json
//	@Success	200	{object}	serializer.Response{data=[]serializer.TaskView}
//	@Router		/tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildTasks(tasks)})
}

// GetMyTasks lists tasks where the user is creator or assignee.
func (h *TaskHandler) GetMyTasks(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	tasks, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildTasks(tasks)})
}

type TaskActorReq struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// AcceptTask godoc
//
//	@Summary	Accept a task
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Task ID"	format(uuid)
//	@Param		payload	body		handler.TaskActorReq	true	"AcceptTask payload"
//	@Success	200		{object}	serializer.Response{data=serializer.TaskView}
//	@Router		/tasks/{id}/accept [post]
func (h *TaskHandler) AcceptTask(c *gin.Context) {
	req := TaskActorReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.Accept(c.Request.Context(), taskID, userID)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildTask(task)})
}

// RefuseTask clears the assignment (when held by the caller) and reopens the task.
func (h *TaskHandler) RefuseTask(c *gin.Context) {
	req := TaskActorReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.Refuse(c.Request.Context(), taskID, userID)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildTask(task)})
}

type SetStatusReq struct {
	StatusID *int   `json:"status_id" binding:"required"`
	Note     string `json:"note"`
}

// SetTaskStatus godoc
//
//	@Summary	Update task status, with an optional free-text note
//	@Tags		task
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Task ID"	format(uuid)
//	@Param		payload	body		handler.SetStatusReq	true	"SetTaskStatus payload"
//	@Success	200		{object}	serializer.Response{data=serializer.TaskView}
//	@Router		/tasks/{id}/status [post]
func (h *TaskHandler) SetTaskStatus(c *gin.Context) {
	req := SetStatusReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.SetStatus(c.Request.Context(), taskID, *req.StatusID, req.Note)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildTask(task)})
}

// UploadAttachment stores a task photo in S3 and records its metadata.
func (h *TaskHandler) UploadAttachment(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("missing file", err))
		return
	}

	attachment, err := h.svc.AddAttachment(c.Request.Context(), taskID, fh)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: attachment})
}

func (h *TaskHandler) GetAttachments(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ListAttachments(c.Request.Context(), taskID, h.presignExpire())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
	"github.com/ajutor-app/ajutor/internal/pkg/apperr"
)

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) Accept(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Refuse(ctx context.Context, taskID, userID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) SetStatus(ctx context.Context, taskID uuid.UUID, statusID int, note string) (*model.Task, error) {
	args := m.Called(ctx, taskID, statusID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) AddAttachment(ctx context.Context, taskID uuid.UUID, fh *multipart.FileHeader) (*model.Attachment, error) {
	args := m.Called(ctx, taskID, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockTaskService) ListAttachments(ctx context.Context, taskID uuid.UUID, expire time.Duration) ([]service.AttachmentOut, error) {
	args := m.Called(ctx, taskID, expire)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.AttachmentOut), args.Error(1)
}

func setupTaskRouter(svc service.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(svc, func() time.Duration { return 15 * time.Minute })
	r := gin.New()
	r.POST("/tasks", h.CreateTask)
	r.GET("/tasks", h.GetTasks)
	r.GET("/tasks/my/:userId", h.GetMyTasks)
	r.POST("/tasks/:id/accept", h.AcceptTask)
	r.POST("/tasks/:id/refuse", h.RefuseTask)
	r.POST("/tasks/:id/status", h.SetTaskStatus)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := sonic.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_CreateTask(t *testing.T) {
	creatorID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateTaskInput")).
			Return(&model.Task{ID: uuid.New(), Title: "Mow the lawn", CreatorID: creatorID}, nil)

		w := postJSON(setupTaskRouter(svc), "/tasks", map[string]interface{}{
			"title":      "Mow the lawn",
			"creator_id": creatorID.String(),
			"price":      50,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid creator id", func(t *testing.T) {
		svc := &MockTaskService{}
		w := postJSON(setupTaskRouter(svc), "/tasks", map[string]interface{}{
			"title":      "Mow the lawn",
			"creator_id": "not-a-uuid",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation error surfaces the service status", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperr.Validation("title is required"))

		w := postJSON(setupTaskRouter(svc), "/tasks", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_GetTasks(t *testing.T) {
	svc := &MockTaskService{}
	svc.On("List", mock.Anything).Return([]model.Task{
		{ID: uuid.New(), Title: "a", City: "Cluj"},
		{ID: uuid.New(), Title: "b"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	setupTaskRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp serializer.Response
	assert.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
	items, ok := resp.Data.([]interface{})
	assert.True(t, ok)
	assert.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "available", first["status_label"])
	assert.Equal(t, "Cluj", first["location_label"])
}

func TestTaskHandler_AcceptTask(t *testing.T) {
	taskID := uuid.New()
	userID := uuid.New()

	t.Run("accepted", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Accept", mock.Anything, taskID, userID).
			Return(&model.Task{ID: taskID, StatusID: model.StatusAccepted, AssignedUserID: &userID}, nil)

		w := postJSON(setupTaskRouter(svc), "/tasks/"+taskID.String()+"/accept",
			map[string]interface{}{"user_id": userID.String()})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := &MockTaskService{}
		w := postJSON(setupTaskRouter(svc), "/tasks/"+taskID.String()+"/accept",
			map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown task", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("Accept", mock.Anything, taskID, userID).
			Return(nil, apperr.NotFound("task not found"))

		w := postJSON(setupTaskRouter(svc), "/tasks/"+taskID.String()+"/accept",
			map[string]interface{}{"user_id": userID.String()})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_SetTaskStatus(t *testing.T) {
	taskID := uuid.New()

	t.Run("status id is required", func(t *testing.T) {
		svc := &MockTaskService{}
		w := postJSON(setupTaskRouter(svc), "/tasks/"+taskID.String()+"/status",
			map[string]interface{}{"note": "done"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero is a valid status id", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("SetStatus", mock.Anything, taskID, 0, "").
			Return(&model.Task{ID: taskID, StatusID: model.StatusAvailable}, nil)

		w := postJSON(setupTaskRouter(svc), "/tasks/"+taskID.String()+"/status",
			map[string]interface{}{"status_id": 0})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("status with note", func(t *testing.T) {
		svc := &MockTaskService{}
		svc.On("SetStatus", mock.Anything, taskID, 3, "all done").
			Return(&model.Task{ID: taskID, StatusID: model.StatusCompleted}, nil)

		w := postJSON(setupTaskRouter(svc), "/tasks/"+taskID.String()+"/status",
			map[string]interface{}{"status_id": 3, "note": "all done"})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestTaskHandler_GetMyTasks(t *testing.T) {
	userID := uuid.New()

	svc := &MockTaskService{}
	svc.On("ListMine", mock.Anything, userID).Return([]model.Task{{Title: "mine"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tasks/my/"+userID.String(), nil)
	w := httptest.NewRecorder()
	setupTaskRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{svc: s}
}

type CreateUserReq struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

// CreateUser godoc
//
//	@Summary	Create a user (also the register endpoint)
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CreateUserReq	true	"CreateUser payload"
//	@Success	200		{object}	serializer.Response{data=serializer.UserView}
//	@Router		/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	req := CreateUserReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, err := h.svc.Create(c.Request.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildUser(user)})
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildUsers(users)})
}

type CredentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
//
//	@Summary	Verify credentials and return the sanitized user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		handler.CredentialsReq	true	"Login payload"
//	@Success	200		{object}	serializer.Response{data=serializer.UserView}
//	@Router		/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	req := CredentialsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildUser(user)})
}

// ResetPassword overwrites the stored hash. Development helper.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	req := CredentialsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, err := h.svc.ResetPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildUser(user)})
}

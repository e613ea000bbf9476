package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

type VerifyHandler struct {
	svc service.VerificationService
}

func NewVerifyHandler(s service.VerificationService) *VerifyHandler {
	return &VerifyHandler{svc: s}
}

type SendCodeReq struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Target string `json:"target" binding:"required"`
}

type CheckCodeReq struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Code   string `json:"code" binding:"required"`
}

// SendCodeResp echoes the issued code so clients can complete the flow
// without a mail or SMS provider wired in.
type SendCodeResp struct {
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *VerifyHandler) SendEmailCode(c *gin.Context) {
	h.sendCode(c, model.VerifyEmail)
}

func (h *VerifyHandler) SendPhoneCode(c *gin.Context) {
	h.sendCode(c, model.VerifyPhone)
}

func (h *VerifyHandler) CheckEmailCode(c *gin.Context) {
	h.checkCode(c, model.VerifyEmail)
}

func (h *VerifyHandler) CheckPhoneCode(c *gin.Context) {
	h.checkCode(c, model.VerifyPhone)
}

func (h *VerifyHandler) sendCode(c *gin.Context, verifyType string) {
	req := SendCodeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, _ := uuid.Parse(req.UserID)

	vc, err := h.svc.SendCode(c.Request.Context(), userID, verifyType, req.Target)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: SendCodeResp{
		Message:   "code sent",
		Code:      vc.Code,
		ExpiresAt: vc.ExpiresAt,
	}})
}

func (h *VerifyHandler) checkCode(c *gin.Context, verifyType string) {
	req := CheckCodeReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	userID, _ := uuid.Parse(req.UserID)

	if err := h.svc.CheckCode(c.Request.Context(), userID, verifyType, req.Code); err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Msg: "verified"})
}

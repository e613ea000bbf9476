package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ajutor-app/ajutor/internal/modules/model"
	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

type BusinessHandler struct {
	svc service.BusinessService
}

func NewBusinessHandler(s service.BusinessService) *BusinessHandler {
	return &BusinessHandler{svc: s}
}

type BusinessReq struct {
	OwnerID     string `json:"owner_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	req := BusinessReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ownerID, _ := uuid.Parse(req.OwnerID)

	biz := &model.Business{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.svc.Create(c.Request.Context(), biz); err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: biz})
}

func (h *BusinessHandler) GetBusinesses(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: list})
}

func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid business id", err))
		return
	}

	req := BusinessReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	ownerID, _ := uuid.Parse(req.OwnerID)

	biz, err := h.svc.Update(c.Request.Context(), &model.Business{
		ID:          id,
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: biz})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ajutor-app/ajutor/internal/modules/serializer"
	"github.com/ajutor-app/ajutor/internal/modules/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: s}
}

type SubmitReviewReq struct {
	AuthorID string `json:"author_id" binding:"required,uuid"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment"`
	TargetID string `json:"target_id"`
}

// SubmitReview godoc
//
//	@Summary	Review a completed task
//	@Tags		review
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Task ID"	format(uuid)
//	@Param		payload	body		handler.SubmitReviewReq	true	"SubmitReview payload"
//	@Success	201		{object}	serializer.Response{data=serializer.ReviewView}
//	@Router		/tasks/{id}/reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	req := SubmitReviewReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.SubmitReviewInput{
		TaskID:   taskID,
		AuthorID: authorID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if req.TargetID != "" {
		targetID, err := uuid.Parse(req.TargetID)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid target_id", err))
			return
		}
		in.TargetID = &targetID
	}

	review, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		c.JSON(serializer.AppErr(err))
		return
	}
	c.JSON(http.StatusCreated, serializer.Response{Data: serializer.BuildReview(review)})
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	reviews, err := h.svc.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: serializer.BuildReviews(reviews)})
}

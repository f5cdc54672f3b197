package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type CommentHandler struct {
	service  service.CommentService
	userRepo repository.UserRepository
}

func NewCommentHandler(service service.CommentService, userRepo repository.UserRepository) *CommentHandler {
	return &CommentHandler{service: service, userRepo: userRepo}
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	comment, err := h.service.Create(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment, "نظر شما با موفقیت ثبت شد")
}

func (h *CommentHandler) GetByThread(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindingError(c, err)
		return
	}

	comments, pagination, err := h.service.GetByThread(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, comments, pagination)
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	comment, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, comment, "نظر با موفقیت ویرایش شد")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "نظر با موفقیت حذف شد")
}

package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type ResourceHandler struct {
	service  service.ResourceService
	userRepo repository.UserRepository
}

func NewResourceHandler(service service.ResourceService, userRepo repository.UserRepository) *ResourceHandler {
	return &ResourceHandler{service: service, userRepo: userRepo}
}

func (h *ResourceHandler) Mark(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.MarkResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	view, err := h.service.Mark(c.Request.Context(), c.Param("id"), userID, req, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view, "تاپیک به کتابخانه منابع افزوده شد")
}

func (h *ResourceHandler) Unmark(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Unmark(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "منبع از کتابخانه حذف شد")
}

func (h *ResourceHandler) GetAll(c *gin.Context) {
	var filter dto.ResourceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	views, pagination, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, views, pagination)
}

func (h *ResourceHandler) GetByThread(c *gin.Context) {
	view, err := h.service.GetByThread(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view, "")
}

func (h *ResourceHandler) Verify(c *gin.Context) {
	view, err := h.service.Verify(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view, "منبع تایید شد")
}

func (h *ResourceHandler) Tags(c *gin.Context) {
	tags, err := h.service.Tags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tags, "")
}

package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type FollowHandler struct {
	service service.FollowService
}

func NewFollowHandler(service service.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

func (h *FollowHandler) FollowThread(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.FollowThread(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "تاپیک دنبال شد")
}

func (h *FollowHandler) UnfollowThread(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.UnfollowThread(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "دنبال کردن تاپیک لغو شد")
}

func (h *FollowHandler) FollowedThreads(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindingError(c, err)
		return
	}

	threads, pagination, err := h.service.FollowedThreads(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, threads, pagination)
}

func (h *FollowHandler) FollowCategory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.FollowCategory(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "دسته‌بندی دنبال شد")
}

func (h *FollowHandler) UnfollowCategory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.UnfollowCategory(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "دنبال کردن دسته‌بندی لغو شد")
}

func (h *FollowHandler) FollowUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.FollowUser(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "کاربر دنبال شد")
}

func (h *FollowHandler) UnfollowUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.UnfollowUser(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "دنبال کردن کاربر لغو شد")
}

func (h *FollowHandler) Followers(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindingError(c, err)
		return
	}

	users, pagination, err := h.service.Followers(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, users, pagination)
}

func (h *FollowHandler) Following(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindingError(c, err)
		return
	}

	users, pagination, err := h.service.Following(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, users, pagination)
}

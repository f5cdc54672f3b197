package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type PolicyUpdateHandler struct {
	service  service.PolicyUpdateService
	userRepo repository.UserRepository
}

func NewPolicyUpdateHandler(service service.PolicyUpdateService, userRepo repository.UserRepository) *PolicyUpdateHandler {
	return &PolicyUpdateHandler{service: service, userRepo: userRepo}
}

func (h *PolicyUpdateHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreatePolicyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	update, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, update, "به‌روزرسانی آیین‌نامه ثبت شد")
}

func (h *PolicyUpdateHandler) GetAll(c *gin.Context) {
	var filter dto.PolicyUpdateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	updates, pagination, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, updates, pagination)
}

func (h *PolicyUpdateHandler) GetByID(c *gin.Context) {
	update, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, update, "")
}

func (h *PolicyUpdateHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdatePolicyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	update, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, update, "به‌روزرسانی آیین‌نامه ویرایش شد")
}

func (h *PolicyUpdateHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "به‌روزرسانی آیین‌نامه حذف شد")
}

package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type EquipmentReviewHandler struct {
	service  service.EquipmentReviewService
	userRepo repository.UserRepository
}

func NewEquipmentReviewHandler(service service.EquipmentReviewService, userRepo repository.UserRepository) *EquipmentReviewHandler {
	return &EquipmentReviewHandler{service: service, userRepo: userRepo}
}

func (h *EquipmentReviewHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateEquipmentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	review, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review, "نقد تجهیزات ثبت شد")
}

func (h *EquipmentReviewHandler) GetAll(c *gin.Context) {
	var filter dto.EquipmentReviewFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	reviews, pagination, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, reviews, pagination)
}

func (h *EquipmentReviewHandler) GetByID(c *gin.Context) {
	review, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, review, "")
}

func (h *EquipmentReviewHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateEquipmentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	review, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, review, "نقد تجهیزات ویرایش شد")
}

func (h *EquipmentReviewHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "نقد تجهیزات حذف شد")
}

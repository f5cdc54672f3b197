package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, category, "دسته‌بندی با موفقیت ایجاد شد")
}

func (h *CategoryHandler) GetAll(c *gin.Context) {
	var filter dto.CategoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	categories, pagination, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, categories, pagination)
}

func (h *CategoryHandler) GetAllFlat(c *gin.Context) {
	categories, err := h.service.GetAllFlat(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, categories, "")
}

func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, category, "")
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, category, "")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	category, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, category, "دسته‌بندی با موفقیت به‌روزرسانی شد")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "دسته‌بندی با موفقیت حذف شد")
}

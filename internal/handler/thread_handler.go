package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type ThreadHandler struct {
	service  service.ThreadService
	search   service.SearchService
	userRepo repository.UserRepository
}

func NewThreadHandler(service service.ThreadService, search service.SearchService, userRepo repository.UserRepository) *ThreadHandler {
	return &ThreadHandler{service: service, search: search, userRepo: userRepo}
}

func (h *ThreadHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	thread, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, thread, "تاپیک با موفقیت ایجاد شد")
}

func (h *ThreadHandler) GetAll(c *gin.Context) {
	var filter dto.ThreadFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	threads, pagination, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, threads, pagination)
}

func (h *ThreadHandler) GetByID(c *gin.Context) {
	thread, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, thread, "")
}

func (h *ThreadHandler) Update(c *gin.Context) {
	var req dto.UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	thread, err := h.service.Update(c.Request.Context(), c.Param("id"), req, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, thread, "تاپیک با موفقیت به‌روزرسانی شد")
}

func (h *ThreadHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "تاپیک با موفقیت حذف شد")
}

func (h *ThreadHandler) TogglePin(c *gin.Context) {
	thread, err := h.service.TogglePin(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "سنجاق تاپیک برداشته شد"
	if thread.IsPinned {
		message = "تاپیک با موفقیت سنجاق شد"
	}
	response.OK(c, thread, message)
}

func (h *ThreadHandler) ToggleLock(c *gin.Context) {
	thread, err := h.service.ToggleLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "قفل تاپیک باز شد"
	if thread.IsLocked {
		message = "تاپیک با موفقیت قفل شد"
	}
	response.OK(c, thread, message)
}

// Search answers full-text queries from the search index; the plain list
// endpoint keeps its database filter.
func (h *ThreadHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.OK(c, []any{}, "")
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	hits, err := h.search.SearchThreads(query, c.Query("categoryId"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, hits, "")
}

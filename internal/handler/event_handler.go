package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type EventHandler struct {
	service  service.EventService
	userRepo repository.UserRepository
}

func NewEventHandler(service service.EventService, userRepo repository.UserRepository) *EventHandler {
	return &EventHandler{service: service, userRepo: userRepo}
}

func (h *EventHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	event, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, event, "رویداد با موفقیت ایجاد شد")
}

func (h *EventHandler) GetAll(c *gin.Context) {
	var filter dto.EventFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	events, pagination, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, events, pagination)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	event, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, event, "")
}

func (h *EventHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	event, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, event, "رویداد با موفقیت به‌روزرسانی شد")
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "رویداد با موفقیت حذف شد")
}

func (h *EventHandler) Register(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Register(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "ثبت نام شما در رویداد انجام شد")
}

func (h *EventHandler) CancelRegistration(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.CancelRegistration(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "ثبت نام شما در رویداد لغو شد")
}

func (h *EventHandler) Participants(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	participants, err := h.service.Participants(c.Request.Context(), c.Param("id"), userID, isAdmin(c, h.userRepo))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, participants, "")
}

func (h *EventHandler) MarkAttended(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.MarkAttended(c.Request.Context(), c.Param("id"), c.Param("userId"), userID, isAdmin(c, h.userRepo)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "حضور شرکت‌کننده ثبت شد")
}

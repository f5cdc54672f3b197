package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type MentorshipHandler struct {
	service service.MentorshipService
}

func NewMentorshipHandler(service service.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{service: service}
}

func (h *MentorshipHandler) Request(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RequestMentorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	mentorship, err := h.service.Request(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, mentorship, "درخواست منتورشیپ ارسال شد")
}

func (h *MentorshipHandler) GetMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter dto.MentorshipFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	mentorships, pagination, err := h.service.GetMine(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, mentorships, pagination)
}

func (h *MentorshipHandler) GetByID(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mentorship, err := h.service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, mentorship, "")
}

func (h *MentorshipHandler) Accept(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mentorship, err := h.service.Accept(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, mentorship, "درخواست منتورشیپ پذیرفته شد")
}

func (h *MentorshipHandler) Reject(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mentorship, err := h.service.Reject(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, mentorship, "درخواست منتورشیپ رد شد")
}

func (h *MentorshipHandler) Complete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mentorship, err := h.service.Complete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, mentorship, "منتورشیپ با موفقیت پایان یافت")
}

func (h *MentorshipHandler) Mentors(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindingError(c, err)
		return
	}

	mentors, pagination, err := h.service.Mentors(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, mentors, pagination)
}

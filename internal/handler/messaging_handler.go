package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type MessagingHandler struct {
	service service.MessagingService
}

func NewMessagingHandler(service service.MessagingService) *MessagingHandler {
	return &MessagingHandler{service: service}
}

func (h *MessagingHandler) CreateConversation(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	conversation, err := h.service.CreateConversation(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, conversation, "گفتگو با موفقیت ایجاد شد")
}

func (h *MessagingHandler) GetConversations(c *gin.Context) {
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

	conversations, pagination, err := h.service.GetConversations(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, conversations, pagination)
}

func (h *MessagingHandler) GetConversation(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	conversation, err := h.service.GetConversation(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, conversation, "")
}

func (h *MessagingHandler) LeaveConversation(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.LeaveConversation(c.Request.Context(), c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "شما گفتگو را ترک کردید")
}

func (h *MessagingHandler) SendMessage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message, "پیام ارسال شد")
}

func (h *MessagingHandler) GetMessages(c *gin.Context) {
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

	messages, pagination, err := h.service.GetMessages(c.Request.Context(), c.Param("id"), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, messages, pagination)
}

func (h *MessagingHandler) EditMessage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	message, err := h.service.EditMessage(c.Request.Context(), c.Param("messageId"), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, "پیام ویرایش شد")
}

func (h *MessagingHandler) DeleteMessage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), c.Param("messageId"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "پیام حذف شد")
}

func (h *MessagingHandler) MarkRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), userID, c.Param("messageId")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "")
}

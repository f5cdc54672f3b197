package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type ReactionHandler struct {
	service service.ReactionService
}

func NewReactionHandler(service service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: service}
}

func (h *ReactionHandler) ReactToThread(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := h.service.ReactToThread(c.Request.Context(), c.Param("id"), userID, req.Type); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "واکنش شما ثبت شد")
}

func (h *ReactionHandler) UnreactToThread(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := h.service.UnreactToThread(c.Request.Context(), c.Param("id"), userID, req.Type); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "واکنش شما حذف شد")
}

func (h *ReactionHandler) ReactToComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := h.service.ReactToComment(c.Request.Context(), c.Param("id"), userID, req.Type); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "واکنش شما ثبت شد")
}

func (h *ReactionHandler) UnreactToComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if err := h.service.UnreactToComment(c.Request.Context(), c.Param("id"), userID, req.Type); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "واکنش شما حذف شد")
}

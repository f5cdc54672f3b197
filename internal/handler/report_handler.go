package handler

import (
	"github.com/gin-gonic/gin"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/service"
	"parastaran.ir/nursesforum/pkg/response"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) ReportUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReportUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	report, err := h.service.ReportUser(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, report, "گزارش شما ثبت شد و بررسی خواهد شد")
}

func (h *ReportHandler) ReportContent(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReportContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	report, err := h.service.ReportContent(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, report, "گزارش شما ثبت شد و بررسی خواهد شد")
}

func (h *ReportHandler) UserReports(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	reports, pagination, err := h.service.UserReports(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, reports, pagination)
}

func (h *ReportHandler) ContentReports(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingError(c, err)
		return
	}

	reports, pagination, err := h.service.ContentReports(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, reports, pagination)
}

func (h *ReportHandler) ReviewUserReport(c *gin.Context) {
	moderatorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	report, err := h.service.ReviewUserReport(c.Request.Context(), c.Param("id"), moderatorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, report, "گزارش با موفقیت بررسی شد")
}

func (h *ReportHandler) ReviewContentReport(c *gin.Context) {
	moderatorID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	report, err := h.service.ReviewContentReport(c.Request.Context(), c.Param("id"), moderatorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, report, "گزارش با موفقیت بررسی شد")
}

package dto

type ShiftFilter struct {
	PageQuery
	Status     string `form:"status" binding:"omitempty,oneof=open filled canceled expired"`
	Department string `form:"department"`
	Type       string `form:"type" binding:"omitempty,oneof=offering requesting"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
}

type CreateShiftRequest struct {
	Date       string  `json:"date" binding:"required"`
	StartTime  string  `json:"startTime" binding:"required"`
	EndTime    string  `json:"endTime" binding:"required"`
	Location   string  `json:"location" binding:"required,max=150"`
	Department string  `json:"department" binding:"required,max=100"`
	Type       string  `json:"type" binding:"required,oneof=offering requesting"`
	Notes      *string `json:"notes"`
}

type UpdateShiftRequest struct {
	Date       *string `json:"date"`
	StartTime  *string `json:"startTime"`
	EndTime    *string `json:"endTime"`
	Location   *string `json:"location" binding:"omitempty,max=150"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Notes      *string `json:"notes"`
}

type ApplyShiftRequest struct {
	Message *string `json:"message"`
}

type ReviewApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

package dto

type ReportUserRequest struct {
	ReportedUserID string  `json:"reportedUserId" binding:"required"`
	Reason         string  `json:"reason" binding:"required,max=255"`
	Details        *string `json:"details"`
}

type ReportContentRequest struct {
	ContentType string  `json:"contentType" binding:"required"`
	ContentID   string  `json:"contentId" binding:"required"`
	Reason      string  `json:"reason" binding:"required,max=255"`
	Details     *string `json:"details"`
}

type ReviewReportRequest struct {
	Status         string  `json:"status" binding:"required,oneof=reviewed dismissed action_taken"`
	ModeratorNotes *string `json:"moderatorNotes"`
	Resolution     *string `json:"resolution"`
}

type ReportFilter struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending reviewed dismissed action_taken"`
}

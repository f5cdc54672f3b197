package dto

type RequestMentorshipRequest struct {
	MentorID       string  `json:"mentorId" binding:"required"`
	SpecialtyFocus *string `json:"specialtyFocus"`
	Notes          *string `json:"notes"`
}

type MentorshipFilter struct {
	PageQuery
	Role   string `form:"role" binding:"omitempty,oneof=mentor mentee"`
	Status string `form:"status" binding:"omitempty,oneof=pending active completed rejected"`
}

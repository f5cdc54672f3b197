package dto

type CommentFilter struct {
	PageQuery
	ParentID string `form:"parentId"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1"`
	ParentID *string `json:"parentId"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type ReactionRequest struct {
	Type string `json:"type" binding:"required,oneof=like helpful insightful"`
}

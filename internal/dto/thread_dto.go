package dto

import "time"

type ThreadFilter struct {
	PageQuery
	Search        string `form:"searchQuery"`
	CategoryID    string `form:"categoryId"`
	AuthorID      string `form:"authorId"`
	ExcludePinned bool   `form:"excludePinned"`
	SortBy        string `form:"sortBy" binding:"omitempty,oneof=createdAt lastActivityAt title viewCount"`
	SortOrder     string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

type CreateThreadRequest struct {
	Title      string `json:"title" binding:"required,min=5,max=100"`
	Content    string `json:"content" binding:"required,min=10"`
	CategoryID string `json:"categoryId" binding:"required"`
}

type UpdateThreadRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=5,max=100"`
	Content    *string `json:"content" binding:"omitempty,min=10"`
	CategoryID *string `json:"categoryId"`
	IsPinned   *bool   `json:"isPinned"`
	IsLocked   *bool   `json:"isLocked"`
}

type AuthorRef struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ThreadDetail is the GetByID shape: thread plus author, category and the
// aggregated comment/reaction counts.
type ThreadDetail struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Content        string            `json:"content"`
	CategoryID     string            `json:"category_id"`
	Category       *CategoryRef      `json:"category,omitempty"`
	AuthorID       string            `json:"author_id"`
	Author         *AuthorRef        `json:"author,omitempty"`
	IsPinned       bool              `json:"is_pinned"`
	IsLocked       bool              `json:"is_locked"`
	ViewCount      int64             `json:"view_count"`
	FollowCount    int64             `json:"follow_count"`
	CommentsCount  int64             `json:"commentsCount"`
	Reactions      map[string]int64  `json:"reactions"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
}

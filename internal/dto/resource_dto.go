package dto

import (
	"time"

	"parastaran.ir/nursesforum/internal/entity"
)

type ResourceFilter struct {
	PageQuery
	Type         string `form:"type"`
	Tag          string `form:"tag"`
	VerifiedOnly bool   `form:"verifiedOnly"`
}

// MarkResourceRequest promotes an existing thread into the resource library.
type MarkResourceRequest struct {
	Type string   `json:"type" binding:"required,max=50"`
	URL  *string  `json:"url" binding:"omitempty,url"`
	Tags []string `json:"tags" binding:"omitempty,dive,min=1,max=100"`
}

type ResourceView struct {
	ThreadID      string    `json:"thread_id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	URL           *string   `json:"url,omitempty"`
	HasAttachment bool      `json:"has_attachment"`
	IsVerified    bool      `json:"is_verified"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	AuthorID      string    `json:"author_id,omitempty"`
}

func NewResourceView(resource *entity.Resource, tags []entity.ResourceTag) ResourceView {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	view := ResourceView{
		ThreadID:      resource.ThreadID,
		Type:          resource.Type,
		URL:           resource.URL,
		HasAttachment: resource.HasAttachment,
		IsVerified:    resource.IsVerified,
		Tags:          names,
		CreatedAt:     resource.CreatedAt,
		UpdatedAt:     resource.UpdatedAt,
	}
	if resource.Thread.ID != "" {
		view.Title = resource.Thread.Title
		view.AuthorID = resource.Thread.AuthorID
	}
	return view
}

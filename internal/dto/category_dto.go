package dto

import "time"

// ParentIDNull is the query sentinel selecting root categories only.
const ParentIDNull = "null"

type CategoryFilter struct {
	PageQuery
	Search             string `form:"search"`
	ParentID           string `form:"parentId"`
	IncludeThreadCount bool   `form:"includeThreadCount"`
	SortBy             string `form:"sortBy" binding:"omitempty,oneof=name createdAt updatedAt"`
	SortOrder          string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

type CreateCategoryRequest struct {
	Name             string  `json:"name" binding:"required,min=3,max=100"`
	Description      *string `json:"description"`
	Slug             string  `json:"slug" binding:"required,min=3,max=100"`
	Icon             *string `json:"icon"`
	IsRegional       bool    `json:"isRegional"`
	HospitalSpecific bool    `json:"hospitalSpecific"`
	ParentID         *string `json:"parentId"`
}

type UpdateCategoryRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description      *string `json:"description"`
	Slug             *string `json:"slug" binding:"omitempty,min=3,max=100"`
	Icon             *string `json:"icon"`
	IsRegional       *bool   `json:"isRegional"`
	HospitalSpecific *bool   `json:"hospitalSpecific"`
	// ParentID accepts the "null" sentinel to detach from the parent.
	ParentID *string `json:"parentId"`
}

// CategoryRef is the trimmed shape used for parent/subcategory attachments.
type CategoryRef struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Icon *string `json:"icon,omitempty"`
}

type CategoryResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      *string       `json:"description,omitempty"`
	Slug             string        `json:"slug"`
	Icon             *string       `json:"icon,omitempty"`
	IsRegional       bool          `json:"is_regional"`
	HospitalSpecific bool          `json:"hospital_specific"`
	ParentID         *string       `json:"parent_id"`
	Parent           *CategoryRef  `json:"parent,omitempty"`
	Subcategories    []CategoryRef `json:"subcategories,omitempty"`
	ThreadCount      *int64        `json:"threadCount,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// CategoryListItem is the flat shape returned by /category/all.
type CategoryListItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
	Slug     string  `json:"slug"`
}

package dto

type PolicyUpdateFilter struct {
	PageQuery
	Hospital string `form:"hospital"`
	Region   string `form:"region"`
}

type CreatePolicyUpdateRequest struct {
	Title         string  `json:"title" binding:"required,min=3,max=255"`
	Content       string  `json:"content" binding:"required,min=10"`
	Hospital      *string `json:"hospital"`
	Region        *string `json:"region"`
	EffectiveDate *string `json:"effectiveDate"`
}

type UpdatePolicyUpdateRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=3,max=255"`
	Content       *string `json:"content" binding:"omitempty,min=10"`
	Hospital      *string `json:"hospital"`
	Region        *string `json:"region"`
	EffectiveDate *string `json:"effectiveDate"`
}

type EquipmentReviewFilter struct {
	PageQuery
	Category  string `form:"category"`
	MinRating int    `form:"minRating" binding:"omitempty,min=1,max=5"`
}

type CreateEquipmentReviewRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Category    string  `json:"category" binding:"required,max=100"`
	Description *string `json:"description"`
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	Review      string  `json:"review" binding:"required,min=10"`
	Pros        *string `json:"pros"`
	Cons        *string `json:"cons"`
}

type UpdateEquipmentReviewRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Review      *string `json:"review" binding:"omitempty,min=10"`
	Pros        *string `json:"pros"`
	Cons        *string `json:"cons"`
}

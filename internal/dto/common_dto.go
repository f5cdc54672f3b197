package dto

// PageQuery is embedded in every list filter. Zero values are replaced by
// defaults in Normalize.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize applies defaults and returns the SQL offset.
func (p *PageQuery) Normalize() int {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return (p.Page - 1) * p.Limit
}

type IDParam struct {
	ID string `uri:"id" binding:"required"`
}

type SlugParam struct {
	Slug string `uri:"slug" binding:"required"`
}

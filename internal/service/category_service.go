package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetAll(ctx context.Context, filter dto.CategoryFilter) ([]dto.CategoryResponse, response.Pagination, error)
	GetAllFlat(ctx context.Context) ([]dto.CategoryListItem, error)
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	taken, err := s.repo.SlugTakenByOther(ctx, req.Slug, "")
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if taken {
		return nil, apperror.New(apperror.CodeValidationError)
	}

	if req.ParentID != nil {
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.CodeCategoryNotFound)
			}
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
	}

	category := &entity.Category{
		Name:             req.Name,
		Description:      req.Description,
		Slug:             req.Slug,
		Icon:             req.Icon,
		IsRegional:       req.IsRegional,
		HospitalSpecific: req.HospitalSpecific,
		ParentID:         req.ParentID,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return s.GetByID(ctx, category.ID)
}

func (s *categoryService) GetAll(ctx context.Context, filter dto.CategoryFilter) ([]dto.CategoryResponse, response.Pagination, error) {
	filter.Normalize()
	categories, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}

	var counts map[string]int64
	if filter.IncludeThreadCount {
		ids := make([]string, len(categories))
		for i, c := range categories {
			ids[i] = c.ID
		}
		counts, err = s.repo.ThreadCountsByCategory(ctx, ids)
		if err != nil {
			return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
		}
	}

	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		item := toCategoryResponse(c)
		if counts != nil {
			count := counts[c.ID]
			item.ThreadCount = &count
		}
		items = append(items, *item)
	}

	return items, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *categoryService) GetAllFlat(ctx context.Context) ([]dto.CategoryListItem, error) {
	categories, err := s.repo.FindAllFlat(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	items := make([]dto.CategoryListItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, dto.CategoryListItem{
			ID:       c.ID,
			Name:     c.Name,
			ParentID: c.ParentID,
			Slug:     c.Slug,
		})
	}
	return items, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeCategoryNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return s.decorate(ctx, category)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeCategoryNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return s.decorate(ctx, category)
}

func (s *categoryService) Update(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeCategoryNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	values := map[string]any{}
	if req.Name != nil {
		values["name"] = *req.Name
	}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.Slug != nil {
		taken, err := s.repo.SlugTakenByOther(ctx, *req.Slug, id)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		if taken {
			return nil, apperror.New(apperror.CodeValidationError)
		}
		values["slug"] = *req.Slug
	}
	if req.Icon != nil {
		values["icon"] = *req.Icon
	}
	if req.IsRegional != nil {
		values["is_regional"] = *req.IsRegional
	}
	if req.HospitalSpecific != nil {
		values["hospital_specific"] = *req.HospitalSpecific
	}
	if req.ParentID != nil {
		if *req.ParentID == dto.ParentIDNull {
			values["parent_id"] = nil
		} else {
			if err := s.checkParent(ctx, id, *req.ParentID); err != nil {
				return nil, err
			}
			values["parent_id"] = *req.ParentID
		}
	}

	if len(values) > 0 {
		if _, err := s.repo.Update(ctx, id, values); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
	}

	return s.GetByID(ctx, id)
}

// checkParent rejects a parent that is the category itself or one of its
// direct children. Deeper cycles are not checked.
func (s *categoryService) checkParent(ctx context.Context, id, parentID string) error {
	if parentID == id {
		return apperror.New(apperror.CodeBadRequest)
	}

	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeCategoryNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if parent.ParentID != nil && *parent.ParentID == id {
		return apperror.New(apperror.CodeBadRequest)
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeCategoryNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if children > 0 {
		return apperror.New(apperror.CodeBadRequest)
	}

	threads, err := s.repo.ThreadCount(ctx, id)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if threads > 0 {
		return apperror.New(apperror.CodeBadRequest)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *categoryService) decorate(ctx context.Context, category *entity.Category) (*dto.CategoryResponse, error) {
	resp := toCategoryResponse(category)

	children, err := s.repo.FindChildren(ctx, category.ID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	for _, child := range children {
		resp.Subcategories = append(resp.Subcategories, dto.CategoryRef{
			ID:   child.ID,
			Name: child.Name,
			Slug: child.Slug,
			Icon: child.Icon,
		})
	}

	count, err := s.repo.ThreadCount(ctx, category.ID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	resp.ThreadCount = &count

	return resp, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	resp := &dto.CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		Slug:             c.Slug,
		Icon:             c.Icon,
		IsRegional:       c.IsRegional,
		HospitalSpecific: c.HospitalSpecific,
		ParentID:         c.ParentID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.Parent != nil {
		resp.Parent = &dto.CategoryRef{
			ID:   c.Parent.ID,
			Name: c.Parent.Name,
			Slug: c.Parent.Slug,
			Icon: c.Parent.Icon,
		}
	}
	return resp
}

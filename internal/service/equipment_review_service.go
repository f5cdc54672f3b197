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

type EquipmentReviewService interface {
	Create(ctx context.Context, authorID string, req dto.CreateEquipmentReviewRequest) (*entity.EquipmentReview, error)
	GetAll(ctx context.Context, filter dto.EquipmentReviewFilter) ([]*entity.EquipmentReview, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*entity.EquipmentReview, error)
	Update(ctx context.Context, id, userID string, req dto.UpdateEquipmentReviewRequest, isAdmin bool) (*entity.EquipmentReview, error)
	Delete(ctx context.Context, id, userID string, isAdmin bool) error
}

type equipmentReviewService struct {
	repo repository.EquipmentReviewRepository
}

func NewEquipmentReviewService(repo repository.EquipmentReviewRepository) EquipmentReviewService {
	return &equipmentReviewService{repo: repo}
}

func (s *equipmentReviewService) Create(ctx context.Context, authorID string, req dto.CreateEquipmentReviewRequest) (*entity.EquipmentReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	review := &entity.EquipmentReview{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		AuthorID:    authorID,
		Rating:      req.Rating,
		Review:      sanitizeContent(req.Review),
		Pros:        req.Pros,
		Cons:        req.Cons,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return review, nil
}

func (s *equipmentReviewService) GetAll(ctx context.Context, filter dto.EquipmentReviewFilter) ([]*entity.EquipmentReview, response.Pagination, error) {
	filter.Normalize()
	reviews, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return reviews, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *equipmentReviewService) GetByID(ctx context.Context, id string) (*entity.EquipmentReview, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return review, nil
}

func (s *equipmentReviewService) Update(ctx context.Context, id, userID string, req dto.UpdateEquipmentReviewRequest, isAdmin bool) (*entity.EquipmentReview, error) {
	if err := s.requireOwnership(ctx, id, userID, isAdmin); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Name != nil {
		values["name"] = *req.Name
	}
	if req.Category != nil {
		values["category"] = *req.Category
	}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, apperror.New(apperror.CodeBadRequest)
		}
		values["rating"] = *req.Rating
	}
	if req.Review != nil {
		values["review"] = sanitizeContent(*req.Review)
	}
	if req.Pros != nil {
		values["pros"] = *req.Pros
	}
	if req.Cons != nil {
		values["cons"] = *req.Cons
	}

	if len(values) == 0 {
		return s.GetByID(ctx, id)
	}

	review, err := s.repo.Update(ctx, id, values)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return review, nil
}

func (s *equipmentReviewService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	if err := s.requireOwnership(ctx, id, userID, isAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *equipmentReviewService) requireOwnership(ctx context.Context, id, userID string, isAdmin bool) error {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if review.AuthorID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}
	return nil
}

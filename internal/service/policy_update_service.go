package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

const policyDateLayout = "2006-01-02"

type PolicyUpdateService interface {
	Create(ctx context.Context, authorID string, req dto.CreatePolicyUpdateRequest) (*entity.PolicyUpdate, error)
	GetAll(ctx context.Context, filter dto.PolicyUpdateFilter) ([]*entity.PolicyUpdate, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*entity.PolicyUpdate, error)
	Update(ctx context.Context, id, userID string, req dto.UpdatePolicyUpdateRequest, isAdmin bool) (*entity.PolicyUpdate, error)
	Delete(ctx context.Context, id, userID string, isAdmin bool) error
}

type policyUpdateService struct {
	repo repository.PolicyUpdateRepository
}

func NewPolicyUpdateService(repo repository.PolicyUpdateRepository) PolicyUpdateService {
	return &policyUpdateService{repo: repo}
}

func (s *policyUpdateService) Create(ctx context.Context, authorID string, req dto.CreatePolicyUpdateRequest) (*entity.PolicyUpdate, error) {
	update := &entity.PolicyUpdate{
		Title:    req.Title,
		Content:  sanitizeContent(req.Content),
		AuthorID: authorID,
		Hospital: req.Hospital,
		Region:   req.Region,
	}

	if req.EffectiveDate != nil {
		date, err := time.Parse(policyDateLayout, *req.EffectiveDate)
		if err != nil {
			return nil, apperror.New(apperror.CodeBadRequest)
		}
		update.EffectiveDate = &date
	}

	if err := s.repo.Create(ctx, update); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return update, nil
}

func (s *policyUpdateService) GetAll(ctx context.Context, filter dto.PolicyUpdateFilter) ([]*entity.PolicyUpdate, response.Pagination, error) {
	filter.Normalize()
	updates, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updates, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *policyUpdateService) GetByID(ctx context.Context, id string) (*entity.PolicyUpdate, error) {
	update, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return update, nil
}

func (s *policyUpdateService) Update(ctx context.Context, id, userID string, req dto.UpdatePolicyUpdateRequest, isAdmin bool) (*entity.PolicyUpdate, error) {
	if err := s.requireOwnership(ctx, id, userID, isAdmin); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Title != nil {
		values["title"] = *req.Title
	}
	if req.Content != nil {
		values["content"] = sanitizeContent(*req.Content)
	}
	if req.Hospital != nil {
		values["hospital"] = *req.Hospital
	}
	if req.Region != nil {
		values["region"] = *req.Region
	}
	if req.EffectiveDate != nil {
		date, err := time.Parse(policyDateLayout, *req.EffectiveDate)
		if err != nil {
			return nil, apperror.New(apperror.CodeBadRequest)
		}
		values["effective_date"] = date
	}

	if len(values) == 0 {
		return s.GetByID(ctx, id)
	}

	update, err := s.repo.Update(ctx, id, values)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return update, nil
}

func (s *policyUpdateService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	if err := s.requireOwnership(ctx, id, userID, isAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *policyUpdateService) requireOwnership(ctx context.Context, id, userID string, isAdmin bool) error {
	update, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if update.AuthorID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

// ResourceService manages the resource library. Resources are threads
// promoted with document metadata, so every operation is keyed by thread ID.
type ResourceService interface {
	Mark(ctx context.Context, threadID, userID string, req dto.MarkResourceRequest, isAdmin bool) (*dto.ResourceView, error)
	Unmark(ctx context.Context, threadID, userID string, isAdmin bool) error
	GetByThread(ctx context.Context, threadID string) (*dto.ResourceView, error)
	GetAll(ctx context.Context, filter dto.ResourceFilter) ([]dto.ResourceView, response.Pagination, error)
	Verify(ctx context.Context, threadID string, verified bool) (*dto.ResourceView, error)
	Tags(ctx context.Context) ([]entity.ResourceTag, error)
}

type resourceService struct {
	repo       repository.ResourceRepository
	threadRepo repository.ThreadRepository
}

func NewResourceService(repo repository.ResourceRepository, threadRepo repository.ThreadRepository) ResourceService {
	return &resourceService{repo: repo, threadRepo: threadRepo}
}

func (s *resourceService) Mark(ctx context.Context, threadID, userID string, req dto.MarkResourceRequest, isAdmin bool) (*dto.ResourceView, error) {
	thread, err := s.threadRepo.FindByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeThreadNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if thread.AuthorID != userID && !isAdmin {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	resource := &entity.Resource{
		ThreadID: threadID,
		Type:     req.Type,
		URL:      req.URL,
	}
	if err := s.repo.Upsert(ctx, resource); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	tagIDs := make([]string, 0, len(req.Tags))
	seen := make(map[string]bool, len(req.Tags))
	for _, name := range req.Tags {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag, err := s.repo.FindOrCreateTag(ctx, name)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	if err := s.repo.SetTags(ctx, threadID, tagIDs); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return s.GetByThread(ctx, threadID)
}

func (s *resourceService) Unmark(ctx context.Context, threadID, userID string, isAdmin bool) error {
	resource, err := s.repo.FindByThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if resource.Thread.AuthorID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}
	if err := s.repo.Delete(ctx, threadID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *resourceService) GetByThread(ctx context.Context, threadID string) (*dto.ResourceView, error) {
	resource, err := s.repo.FindByThread(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	tags, err := s.repo.TagsByResource(ctx, threadID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	view := dto.NewResourceView(resource, tags)
	return &view, nil
}

func (s *resourceService) GetAll(ctx context.Context, filter dto.ResourceFilter) ([]dto.ResourceView, response.Pagination, error) {
	filter.Normalize()
	resources, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}

	views := make([]dto.ResourceView, 0, len(resources))
	for _, resource := range resources {
		tags, err := s.repo.TagsByResource(ctx, resource.ThreadID)
		if err != nil {
			return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
		}
		views = append(views, dto.NewResourceView(resource, tags))
	}

	return views, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *resourceService) Verify(ctx context.Context, threadID string, verified bool) (*dto.ResourceView, error) {
	if _, err := s.repo.FindByThread(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if err := s.repo.Update(ctx, threadID, map[string]any{"is_verified": verified}); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return s.GetByThread(ctx, threadID)
}

func (s *resourceService) Tags(ctx context.Context) ([]entity.ResourceTag, error) {
	tags, err := s.repo.AllTags(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return tags, nil
}

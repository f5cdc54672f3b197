package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type ThreadService interface {
	Create(ctx context.Context, authorID string, req dto.CreateThreadRequest) (*entity.Thread, error)
	GetAll(ctx context.Context, filter dto.ThreadFilter) ([]*entity.Thread, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*dto.ThreadDetail, error)
	Update(ctx context.Context, id string, req dto.UpdateThreadRequest, isAdmin bool) (*entity.Thread, error)
	Delete(ctx context.Context, id string) error
	TogglePin(ctx context.Context, id string) (*entity.Thread, error)
	ToggleLock(ctx context.Context, id string) (*entity.Thread, error)
}

type threadService struct {
	repo         repository.ThreadRepository
	categoryRepo repository.CategoryRepository
	rdb          *redis.Client
	search       SearchService
	createLimit  time.Duration
}

func NewThreadService(
	repo repository.ThreadRepository,
	categoryRepo repository.CategoryRepository,
	rdb *redis.Client,
	search SearchService,
	createLimit time.Duration,
) ThreadService {
	return &threadService{
		repo:         repo,
		categoryRepo: categoryRepo,
		rdb:          rdb,
		search:       search,
		createLimit:  createLimit,
	}
}

func (s *threadService) Create(ctx context.Context, authorID string, req dto.CreateThreadRequest) (*entity.Thread, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, authorID, "create_thread", s.createLimit)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if !allowed {
		return nil, apperror.New(apperror.CodeRateLimitExceeded)
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		// A failed create releases the cooldown so the user can retry.
		_ = ClearRateLimit(ctx, s.rdb, authorID, "create_thread")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeCategoryNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	thread := &entity.Thread{
		Title:      req.Title,
		Content:    sanitizeContent(req.Content),
		CategoryID: req.CategoryID,
		AuthorID:   authorID,
	}

	if err := s.repo.Create(ctx, thread); err != nil {
		_ = ClearRateLimit(ctx, s.rdb, authorID, "create_thread")
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := s.search.IndexThread(thread); err != nil {
		log.Printf("failed to index thread %s: %v", thread.ID, err)
	}

	return s.repo.FindByID(ctx, thread.ID)
}

func (s *threadService) GetAll(ctx context.Context, filter dto.ThreadFilter) ([]*entity.Thread, response.Pagination, error) {
	filter.Normalize()
	threads, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return threads, response.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetByID counts the read before loading, as a single atomic increment, so
// concurrent reads never lose a view.
func (s *threadService) GetByID(ctx context.Context, id string) (*dto.ThreadDetail, error) {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	thread, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeThreadNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	comments, err := s.repo.CountComments(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	reactions, err := s.repo.ReactionCounts(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	detail := &dto.ThreadDetail{
		ID:             thread.ID,
		Title:          thread.Title,
		Content:        thread.Content,
		CategoryID:     thread.CategoryID,
		AuthorID:       thread.AuthorID,
		IsPinned:       thread.IsPinned,
		IsLocked:       thread.IsLocked,
		ViewCount:      thread.ViewCount,
		FollowCount:    thread.FollowCount,
		CommentsCount:  comments,
		Reactions:      reactions,
		CreatedAt:      thread.CreatedAt,
		UpdatedAt:      thread.UpdatedAt,
		LastActivityAt: thread.LastActivityAt,
	}
	detail.Category = &dto.CategoryRef{
		ID:   thread.Category.ID,
		Name: thread.Category.Name,
		Slug: thread.Category.Slug,
		Icon: thread.Category.Icon,
	}
	detail.Author = &dto.AuthorRef{
		ID:           thread.Author.ID,
		Username:     thread.Author.Username,
		ProfileImage: thread.Author.ProfileImage,
		CreatedAt:    thread.Author.CreatedAt,
	}

	return detail, nil
}

func (s *threadService) Update(ctx context.Context, id string, req dto.UpdateThreadRequest, isAdmin bool) (*entity.Thread, error) {
	if err := s.requireThread(ctx, id); err != nil {
		return nil, err
	}

	values := map[string]any{}
	if req.Title != nil {
		values["title"] = *req.Title
	}
	if req.Content != nil {
		values["content"] = sanitizeContent(*req.Content)
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.CodeCategoryNotFound)
			}
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		values["category_id"] = *req.CategoryID
	}
	if req.IsPinned != nil || req.IsLocked != nil {
		if !isAdmin {
			return nil, apperror.New(apperror.CodeAdminRequired)
		}
		if req.IsPinned != nil {
			values["is_pinned"] = *req.IsPinned
		}
		if req.IsLocked != nil {
			values["is_locked"] = *req.IsLocked
		}
	}

	if len(values) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	thread, err := s.repo.Update(ctx, id, values)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := s.search.IndexThread(thread); err != nil {
		log.Printf("failed to reindex thread %s: %v", thread.ID, err)
	}

	return thread, nil
}

func (s *threadService) Delete(ctx context.Context, id string) error {
	if err := s.requireThread(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if err := s.search.DeleteThread(id); err != nil {
		log.Printf("failed to deindex thread %s: %v", id, err)
	}
	return nil
}

// TogglePin flips the flag in place. Two racing toggles land on the
// original value instead of both observing the same stale read.
func (s *threadService) TogglePin(ctx context.Context, id string) (*entity.Thread, error) {
	if err := s.requireThread(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.TogglePin(ctx, id); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *threadService) ToggleLock(ctx context.Context, id string) (*entity.Thread, error) {
	if err := s.requireThread(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.ToggleLock(ctx, id); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *threadService) requireThread(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeThreadNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type CommentService interface {
	Create(ctx context.Context, threadID, authorID string, req dto.CreateCommentRequest) (*entity.Comment, error)
	GetByThread(ctx context.Context, threadID string, page dto.PageQuery) ([]*entity.Comment, response.Pagination, error)
	Update(ctx context.Context, id, userID string, req dto.UpdateCommentRequest, isAdmin bool) (*entity.Comment, error)
	Delete(ctx context.Context, id, userID string, isAdmin bool) error
}

type commentService struct {
	repo          repository.CommentRepository
	threadRepo    repository.ThreadRepository
	followRepo    repository.FollowRepository
	notifications NotificationService
}

func NewCommentService(
	repo repository.CommentRepository,
	threadRepo repository.ThreadRepository,
	followRepo repository.FollowRepository,
	notifications NotificationService,
) CommentService {
	return &commentService{
		repo:          repo,
		threadRepo:    threadRepo,
		followRepo:    followRepo,
		notifications: notifications,
	}
}

func (s *commentService) Create(ctx context.Context, threadID, authorID string, req dto.CreateCommentRequest) (*entity.Comment, error) {
	thread, err := s.threadRepo.FindByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeThreadNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if thread.IsLocked {
		return nil, apperror.New(apperror.CodeForbidden)
	}

	if req.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.CodeCommentNotFound)
			}
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		if parent.ThreadID != threadID {
			return nil, apperror.New(apperror.CodeBadRequest)
		}
	}

	comment := &entity.Comment{
		Content:  sanitizeContent(req.Content),
		ThreadID: threadID,
		AuthorID: authorID,
		ParentID: req.ParentID,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := s.threadRepo.TouchLastActivity(ctx, threadID); err != nil {
		log.Printf("failed to bump thread activity for %s: %v", threadID, err)
	}

	s.notifyFollowers(ctx, thread, authorID)

	return s.repo.FindByID(ctx, comment.ID)
}

// notifyFollowers fans a reply notification out to every follower of the
// thread except the comment author.
func (s *commentService) notifyFollowers(ctx context.Context, thread *entity.Thread, authorID string) {
	follows, err := s.followRepo.ThreadFollowers(ctx, thread.ID)
	if err != nil {
		log.Printf("failed to load followers of thread %s: %v", thread.ID, err)
		return
	}

	var notifications []*entity.Notification
	for _, follow := range follows {
		if follow.UserID == authorID {
			continue
		}
		threadID := thread.ID
		notifications = append(notifications, &entity.Notification{
			UserID:    follow.UserID,
			Type:      entity.NotificationTypeThreadReply,
			Title:     "پاسخ جدیدی در تاپیک «" + thread.Title + "» ثبت شد",
			RelatedID: &threadID,
		})
	}

	if err := s.notifications.NotifyMany(ctx, notifications); err != nil {
		log.Printf("failed to notify followers of thread %s: %v", thread.ID, err)
	}
}

func (s *commentService) GetByThread(ctx context.Context, threadID string, page dto.PageQuery) ([]*entity.Comment, response.Pagination, error) {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.Pagination{}, apperror.New(apperror.CodeThreadNotFound)
		}
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}

	page.Normalize()
	comments, total, err := s.repo.FindByThread(ctx, threadID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return comments, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *commentService) Update(ctx context.Context, id, userID string, req dto.UpdateCommentRequest, isAdmin bool) (*entity.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeCommentNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if comment.AuthorID != userID && !isAdmin {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{
		"content":   sanitizeContent(req.Content),
		"is_edited": true,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeCommentNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if comment.AuthorID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

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

type FollowService interface {
	FollowThread(ctx context.Context, threadID, userID string) error
	UnfollowThread(ctx context.Context, threadID, userID string) error
	FollowedThreads(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Thread, response.Pagination, error)

	FollowCategory(ctx context.Context, categoryID, userID string) error
	UnfollowCategory(ctx context.Context, categoryID, userID string) error

	FollowUser(ctx context.Context, followedID, followerID string) error
	UnfollowUser(ctx context.Context, followedID, followerID string) error
	Followers(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, response.Pagination, error)
	Following(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, response.Pagination, error)
}

type followService struct {
	repo          repository.FollowRepository
	threadRepo    repository.ThreadRepository
	categoryRepo  repository.CategoryRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

func NewFollowService(
	repo repository.FollowRepository,
	threadRepo repository.ThreadRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
) FollowService {
	return &followService{
		repo:          repo,
		threadRepo:    threadRepo,
		categoryRepo:  categoryRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// FollowThread is idempotent; the follow counter only moves when a row was
// actually inserted.
func (s *followService) FollowThread(ctx context.Context, threadID, userID string) error {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeThreadNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	inserted, err := s.repo.FollowThread(ctx, &entity.ThreadFollow{
		ThreadID:             threadID,
		UserID:               userID,
		NotificationsEnabled: true,
	})
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if inserted {
		if err := s.threadRepo.AdjustFollowCount(ctx, threadID, 1); err != nil {
			return apperror.Wrap(apperror.CodeInternal, err)
		}
	}
	return nil
}

func (s *followService) UnfollowThread(ctx context.Context, threadID, userID string) error {
	removed, err := s.repo.UnfollowThread(ctx, threadID, userID)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if removed {
		if err := s.threadRepo.AdjustFollowCount(ctx, threadID, -1); err != nil {
			return apperror.Wrap(apperror.CodeInternal, err)
		}
	}
	return nil
}

func (s *followService) FollowedThreads(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Thread, response.Pagination, error) {
	page.Normalize()
	threads, total, err := s.repo.FollowedThreads(ctx, userID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return threads, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *followService) FollowCategory(ctx context.Context, categoryID, userID string) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeCategoryNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	_, err := s.repo.FollowCategory(ctx, &entity.CategoryFollow{
		CategoryID:           categoryID,
		UserID:               userID,
		NotificationsEnabled: true,
	})
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *followService) UnfollowCategory(ctx context.Context, categoryID, userID string) error {
	if _, err := s.repo.UnfollowCategory(ctx, categoryID, userID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *followService) FollowUser(ctx context.Context, followedID, followerID string) error {
	if followedID == followerID {
		return apperror.New(apperror.CodeBadRequest)
	}

	follower, err := s.userRepo.FindByID(ctx, followerID)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if _, err := s.userRepo.FindByID(ctx, followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeUserNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	inserted, err := s.repo.FollowUser(ctx, &entity.UserFollow{
		FollowedID:           followedID,
		FollowerID:           followerID,
		NotificationsEnabled: true,
	})
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if inserted {
		relID := followerID
		err := s.notifications.Notify(ctx, &entity.Notification{
			UserID:    followedID,
			Type:      entity.NotificationTypeFollow,
			Title:     follower.Username + " شما را دنبال کرد",
			RelatedID: &relID,
		})
		if err != nil {
			log.Printf("failed to notify user %s of new follower: %v", followedID, err)
		}
	}
	return nil
}

func (s *followService) UnfollowUser(ctx context.Context, followedID, followerID string) error {
	if _, err := s.repo.UnfollowUser(ctx, followedID, followerID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *followService) Followers(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, response.Pagination, error) {
	page.Normalize()
	users, total, err := s.repo.Followers(ctx, userID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return users, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *followService) Following(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, response.Pagination, error) {
	page.Normalize()
	users, total, err := s.repo.Following(ctx, userID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return users, response.NewPagination(page.Page, page.Limit, total), nil
}

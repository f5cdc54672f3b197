package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
)

type ReactionService interface {
	ReactToThread(ctx context.Context, threadID, userID, reactionType string) error
	UnreactToThread(ctx context.Context, threadID, userID, reactionType string) error
	ReactToComment(ctx context.Context, commentID, userID, reactionType string) error
	UnreactToComment(ctx context.Context, commentID, userID, reactionType string) error
}

type reactionService struct {
	repo        repository.ReactionRepository
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
}

func NewReactionService(
	repo repository.ReactionRepository,
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
) ReactionService {
	return &reactionService{
		repo:        repo,
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
	}
}

// ReactToThread is idempotent: reacting twice with the same type leaves a
// single row.
func (s *reactionService) ReactToThread(ctx context.Context, threadID, userID, reactionType string) error {
	if _, err := s.threadRepo.FindByID(ctx, threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeThreadNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	reaction := &entity.ThreadReaction{
		ThreadID: threadID,
		UserID:   userID,
		Type:     reactionType,
	}
	if err := s.repo.AddThreadReaction(ctx, reaction); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *reactionService) UnreactToThread(ctx context.Context, threadID, userID, reactionType string) error {
	removed, err := s.repo.RemoveThreadReaction(ctx, threadID, userID, reactionType)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if !removed {
		return apperror.New(apperror.CodeNotFound)
	}
	return nil
}

func (s *reactionService) ReactToComment(ctx context.Context, commentID, userID, reactionType string) error {
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeCommentNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	reaction := &entity.CommentReaction{
		CommentID: commentID,
		UserID:    userID,
		Type:      reactionType,
	}
	if err := s.repo.AddCommentReaction(ctx, reaction); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *reactionService) UnreactToComment(ctx context.Context, commentID, userID, reactionType string) error {
	removed, err := s.repo.RemoveCommentReaction(ctx, commentID, userID, reactionType)
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if !removed {
		return apperror.New(apperror.CodeNotFound)
	}
	return nil
}

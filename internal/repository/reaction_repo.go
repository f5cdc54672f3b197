package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parastaran.ir/nursesforum/internal/entity"
)

type ReactionRepository interface {
	AddThreadReaction(ctx context.Context, reaction *entity.ThreadReaction) error
	RemoveThreadReaction(ctx context.Context, threadID, userID, reactionType string) (bool, error)
	AddCommentReaction(ctx context.Context, reaction *entity.CommentReaction) error
	RemoveCommentReaction(ctx context.Context, commentID, userID, reactionType string) (bool, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) AddThreadReaction(ctx context.Context, reaction *entity.ThreadReaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reaction).Error
}

func (r *reactionRepository) RemoveThreadReaction(ctx context.Context, threadID, userID, reactionType string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ? AND type = ?", threadID, userID, reactionType).
		Delete(&entity.ThreadReaction{})
	return result.RowsAffected > 0, result.Error
}

func (r *reactionRepository) AddCommentReaction(ctx context.Context, reaction *entity.CommentReaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reaction).Error
}

func (r *reactionRepository) RemoveCommentReaction(ctx context.Context, commentID, userID, reactionType string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ? AND type = ?", commentID, userID, reactionType).
		Delete(&entity.CommentReaction{})
	return result.RowsAffected > 0, result.Error
}

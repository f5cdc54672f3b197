package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type FollowRepository interface {
	FollowThread(ctx context.Context, follow *entity.ThreadFollow) (bool, error)
	UnfollowThread(ctx context.Context, threadID, userID string) (bool, error)
	ThreadFollowers(ctx context.Context, threadID string) ([]*entity.ThreadFollow, error)
	FollowedThreads(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Thread, int64, error)

	FollowCategory(ctx context.Context, follow *entity.CategoryFollow) (bool, error)
	UnfollowCategory(ctx context.Context, categoryID, userID string) (bool, error)
	CategoryFollowers(ctx context.Context, categoryID string) ([]*entity.CategoryFollow, error)

	FollowUser(ctx context.Context, follow *entity.UserFollow) (bool, error)
	UnfollowUser(ctx context.Context, followedID, followerID string) (bool, error)
	Followers(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, int64, error)
	Following(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) FollowThread(ctx context.Context, follow *entity.ThreadFollow) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) UnfollowThread(ctx context.Context, threadID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("thread_id = ? AND user_id = ?", threadID, userID).
		Delete(&entity.ThreadFollow{})
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) ThreadFollowers(ctx context.Context, threadID string) ([]*entity.ThreadFollow, error) {
	var follows []*entity.ThreadFollow
	err := r.db.WithContext(ctx).
		Where("thread_id = ? AND notifications_enabled = ?", threadID, true).
		Find(&follows).Error
	return follows, err
}

func (r *followRepository) FollowedThreads(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Thread, int64, error) {
	var threads []*entity.Thread
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Joins("JOIN thread_follows ON thread_follows.thread_id = threads.id").
		Where("thread_follows.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Preload("Category").
		Order("thread_follows.followed_at desc").
		Offset(offset).
		Limit(page.Limit).
		Find(&threads).Error; err != nil {
		return nil, 0, err
	}

	return threads, total, nil
}

func (r *followRepository) FollowCategory(ctx context.Context, follow *entity.CategoryFollow) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) UnfollowCategory(ctx context.Context, categoryID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Delete(&entity.CategoryFollow{})
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) CategoryFollowers(ctx context.Context, categoryID string) ([]*entity.CategoryFollow, error) {
	var follows []*entity.CategoryFollow
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND notifications_enabled = ?", categoryID, true).
		Find(&follows).Error
	return follows, err
}

func (r *followRepository) FollowUser(ctx context.Context, follow *entity.UserFollow) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) UnfollowUser(ctx context.Context, followedID, followerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("followed_id = ? AND follower_id = ?", followedID, followerID).
		Delete(&entity.UserFollow{})
	return result.RowsAffected > 0, result.Error
}

func (r *followRepository) Followers(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, int64, error) {
	var users []*entity.User
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.followed_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Order("user_follows.followed_at desc").
		Offset(offset).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *followRepository) Following(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.User, int64, error) {
	var users []*entity.User
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN user_follows ON user_follows.followed_id = users.id").
		Where("user_follows.follower_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Order("user_follows.followed_at desc").
		Offset(offset).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

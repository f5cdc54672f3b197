package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type ThreadRepository interface {
	Create(ctx context.Context, thread *entity.Thread) error
	FindByID(ctx context.Context, id string) (*entity.Thread, error)
	FindAll(ctx context.Context, filter dto.ThreadFilter) ([]*entity.Thread, int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.Thread, error)
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	TogglePin(ctx context.Context, id string) error
	ToggleLock(ctx context.Context, id string) error
	TouchLastActivity(ctx context.Context, id string) error
	AdjustFollowCount(ctx context.Context, id string, delta int) error
	CountComments(ctx context.Context, threadID string) (int64, error)
	ReactionCounts(ctx context.Context, threadID string) (map[string]int64, error)
}

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) Create(ctx context.Context, thread *entity.Thread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *threadRepository) FindByID(ctx context.Context, id string) (*entity.Thread, error) {
	var thread entity.Thread
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		First(&thread, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

var threadSortColumns = map[string]string{
	"createdAt":      "created_at",
	"lastActivityAt": "last_activity_at",
	"title":          "title",
	"viewCount":      "view_count",
}

func (r *threadRepository) FindAll(ctx context.Context, filter dto.ThreadFilter) ([]*entity.Thread, int64, error) {
	var threads []*entity.Thread
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Thread{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.ExcludePinned {
		query = query.Where("is_pinned = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := threadSortColumns[filter.SortBy]
	if !ok {
		column = "last_activity_at"
	}
	direction := "desc"
	if filter.SortOrder == "asc" {
		direction = "asc"
	}

	offset := filter.Normalize()
	if err := query.
		Preload("Category").
		Preload("Author").
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).
		Limit(filter.Limit).
		Find(&threads).Error; err != nil {
		return nil, 0, err
	}

	return threads, total, nil
}

func (r *threadRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.Thread, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Thread{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *threadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Thread{}, "id = ?", id).Error
}

func (r *threadRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *threadRepository) TogglePin(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Where("id = ?", id).
		UpdateColumn("is_pinned", gorm.Expr("NOT is_pinned")).Error
}

func (r *threadRepository) ToggleLock(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Where("id = ?", id).
		UpdateColumn("is_locked", gorm.Expr("NOT is_locked")).Error
}

func (r *threadRepository) TouchLastActivity(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Where("id = ?", id).
		UpdateColumn("last_activity_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *threadRepository) AdjustFollowCount(ctx context.Context, id string, delta int) error {
	return r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Where("id = ?", id).
		UpdateColumn("follow_count", gorm.Expr("follow_count + ?", delta)).Error
}

func (r *threadRepository) CountComments(ctx context.Context, threadID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("thread_id = ?", threadID).Count(&count).Error
	return count, err
}

func (r *threadRepository) ReactionCounts(ctx context.Context, threadID string) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&entity.ThreadReaction{}).
		Select("type, COUNT(*) as count").
		Where("thread_id = ?", threadID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}

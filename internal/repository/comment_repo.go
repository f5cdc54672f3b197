package repository

import (
	"context"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id string) (*entity.Comment, error)
	FindByThread(ctx context.Context, threadID string, page dto.PageQuery) ([]*entity.Comment, int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	ReactionCounts(ctx context.Context, commentIDs []string) (map[string]map[string]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByThread(ctx context.Context, threadID string, page dto.PageQuery) ([]*entity.Comment, int64, error) {
	var comments []*entity.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("thread_id = ?", threadID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Preload("Author").
		Order("created_at asc").
		Offset(offset).
		Limit(page.Limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.Comment, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Comment{}, "id = ?", id).Error
}

// ReactionCounts returns counts per comment per reaction type for one page of
// comments, in a single grouped query.
func (r *commentRepository) ReactionCounts(ctx context.Context, commentIDs []string) (map[string]map[string]int64, error) {
	counts := make(map[string]map[string]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CommentID string
		Type      string
		Count     int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&entity.CommentReaction{}).
		Select("comment_id, type, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id, type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		if counts[r.CommentID] == nil {
			counts[r.CommentID] = make(map[string]int64)
		}
		counts[r.CommentID][r.Type] = r.Count
	}
	return counts, nil
}

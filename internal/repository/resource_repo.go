package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type ResourceRepository interface {
	Upsert(ctx context.Context, resource *entity.Resource) error
	FindByThread(ctx context.Context, threadID string) (*entity.Resource, error)
	FindAll(ctx context.Context, filter dto.ResourceFilter) ([]*entity.Resource, int64, error)
	Update(ctx context.Context, threadID string, values map[string]any) error
	Delete(ctx context.Context, threadID string) error

	FindOrCreateTag(ctx context.Context, name string) (*entity.ResourceTag, error)
	AllTags(ctx context.Context) ([]entity.ResourceTag, error)
	SetTags(ctx context.Context, threadID string, tagIDs []string) error
	TagsByResource(ctx context.Context, threadID string) ([]entity.ResourceTag, error)
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Upsert(ctx context.Context, resource *entity.Resource) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "thread_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "url", "has_attachment", "updated_at"}),
		}).
		Create(resource).Error
}

func (r *resourceRepository) FindByThread(ctx context.Context, threadID string) (*entity.Resource, error) {
	var resource entity.Resource
	if err := r.db.WithContext(ctx).
		Preload("Thread").
		First(&resource, "thread_id = ?", threadID).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) FindAll(ctx context.Context, filter dto.ResourceFilter) ([]*entity.Resource, int64, error) {
	var resources []*entity.Resource
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Resource{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if filter.Tag != "" {
		query = query.
			Joins("JOIN resource_to_tags ON resource_to_tags.resource_id = resources.thread_id").
			Joins("JOIN resource_tags ON resource_tags.id = resource_to_tags.tag_id").
			Where("resource_tags.name = ?", filter.Tag)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Preload("Thread").
		Order("resources.created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

func (r *resourceRepository) Update(ctx context.Context, threadID string, values map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&entity.Resource{}).
		Where("thread_id = ?", threadID).
		Updates(values).Error
}

func (r *resourceRepository) Delete(ctx context.Context, threadID string) error {
	if err := r.db.WithContext(ctx).
		Where("resource_id = ?", threadID).
		Delete(&entity.ResourceToTag{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&entity.Resource{}, "thread_id = ?", threadID).Error
}

func (r *resourceRepository) FindOrCreateTag(ctx context.Context, name string) (*entity.ResourceTag, error) {
	var tag entity.ResourceTag
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		FirstOrCreate(&tag, entity.ResourceTag{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *resourceRepository) AllTags(ctx context.Context) ([]entity.ResourceTag, error) {
	var tags []entity.ResourceTag
	err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error
	return tags, err
}

// SetTags replaces the resource's tag set with the given tags.
func (r *resourceRepository) SetTags(ctx context.Context, threadID string, tagIDs []string) error {
	if err := r.db.WithContext(ctx).
		Where("resource_id = ?", threadID).
		Delete(&entity.ResourceToTag{}).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		link := entity.ResourceToTag{ResourceID: threadID, TagID: tagID}
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *resourceRepository) TagsByResource(ctx context.Context, threadID string) ([]entity.ResourceTag, error) {
	var tags []entity.ResourceTag
	err := r.db.WithContext(ctx).
		Joins("JOIN resource_to_tags ON resource_to_tags.tag_id = resource_tags.id").
		Where("resource_to_tags.resource_id = ?", threadID).
		Order("resource_tags.name asc").
		Find(&tags).Error
	return tags, err
}

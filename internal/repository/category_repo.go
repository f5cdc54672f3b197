package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context, filter dto.CategoryFilter) ([]*entity.Category, int64, error)
	FindAllFlat(ctx context.Context) ([]*entity.Category, error)
	FindChildren(ctx context.Context, parentID string) ([]*entity.Category, error)
	CountChildren(ctx context.Context, parentID string) (int64, error)
	SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error)
	ThreadCount(ctx context.Context, categoryID string) (int64, error)
	ThreadCountsByCategory(ctx context.Context, categoryIDs []string) (map[string]int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

var categorySortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *categoryRepository) FindAll(ctx context.Context, filter dto.CategoryFilter) ([]*entity.Category, int64, error) {
	var categories []*entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	if filter.ParentID == dto.ParentIDNull {
		query = query.Where("parent_id IS NULL")
	} else if filter.ParentID != "" {
		query = query.Where("parent_id = ?", filter.ParentID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := categorySortColumns[filter.SortBy]
	if !ok {
		column = "name"
	}
	direction := "asc"
	if filter.SortOrder == "desc" {
		direction = "desc"
	}

	offset := filter.Normalize()
	if err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).
		Limit(filter.Limit).
		Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *categoryRepository) FindAllFlat(ctx context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	var categories []*entity.Category
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CountChildren(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Category{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *categoryRepository) SlugTakenByOther(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.Category{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) ThreadCount(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Thread{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// ThreadCountsByCategory issues one grouped count query for the given
// categories instead of counting per row.
func (r *categoryRepository) ThreadCountsByCategory(ctx context.Context, categoryIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CategoryID string
		Count      int64
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&entity.Thread{}).
		Select("category_id, COUNT(*) as count").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}

func (r *categoryRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.Category, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type EquipmentReviewRepository interface {
	Create(ctx context.Context, review *entity.EquipmentReview) error
	FindByID(ctx context.Context, id string) (*entity.EquipmentReview, error)
	FindAll(ctx context.Context, filter dto.EquipmentReviewFilter) ([]*entity.EquipmentReview, int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.EquipmentReview, error)
	Delete(ctx context.Context, id string) error
}

type equipmentReviewRepository struct {
	db *gorm.DB
}

func NewEquipmentReviewRepository(db *gorm.DB) EquipmentReviewRepository {
	return &equipmentReviewRepository{db: db}
}

func (r *equipmentReviewRepository) Create(ctx context.Context, review *entity.EquipmentReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *equipmentReviewRepository) FindByID(ctx context.Context, id string) (*entity.EquipmentReview, error) {
	var review entity.EquipmentReview
	if err := r.db.WithContext(ctx).Preload("Author").First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *equipmentReviewRepository) FindAll(ctx context.Context, filter dto.EquipmentReviewFilter) ([]*entity.EquipmentReview, int64, error) {
	var reviews []*entity.EquipmentReview
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.EquipmentReview{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinRating > 0 {
		query = query.Where("rating >= ?", filter.MinRating)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Preload("Author").
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *equipmentReviewRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.EquipmentReview, error) {
	if err := r.db.WithContext(ctx).Model(&entity.EquipmentReview{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *equipmentReviewRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.EquipmentReview{}, "id = ?", id).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type PolicyUpdateRepository interface {
	Create(ctx context.Context, update *entity.PolicyUpdate) error
	FindByID(ctx context.Context, id string) (*entity.PolicyUpdate, error)
	FindAll(ctx context.Context, filter dto.PolicyUpdateFilter) ([]*entity.PolicyUpdate, int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.PolicyUpdate, error)
	Delete(ctx context.Context, id string) error
}

type policyUpdateRepository struct {
	db *gorm.DB
}

func NewPolicyUpdateRepository(db *gorm.DB) PolicyUpdateRepository {
	return &policyUpdateRepository{db: db}
}

func (r *policyUpdateRepository) Create(ctx context.Context, update *entity.PolicyUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *policyUpdateRepository) FindByID(ctx context.Context, id string) (*entity.PolicyUpdate, error) {
	var update entity.PolicyUpdate
	if err := r.db.WithContext(ctx).Preload("Author").First(&update, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

func (r *policyUpdateRepository) FindAll(ctx context.Context, filter dto.PolicyUpdateFilter) ([]*entity.PolicyUpdate, int64, error) {
	var updates []*entity.PolicyUpdate
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PolicyUpdate{})

	if filter.Hospital != "" {
		query = query.Where("hospital = ?", filter.Hospital)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Preload("Author").
		Order("effective_date desc, created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&updates).Error; err != nil {
		return nil, 0, err
	}

	return updates, total, nil
}

func (r *policyUpdateRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.PolicyUpdate, error) {
	if err := r.db.WithContext(ctx).Model(&entity.PolicyUpdate{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *policyUpdateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.PolicyUpdate{}, "id = ?", id).Error
}

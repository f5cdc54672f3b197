package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	FindByID(ctx context.Context, id string) (*entity.Shift, error)
	FindAll(ctx context.Context, filter dto.ShiftFilter) ([]*entity.Shift, int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.Shift, error)
	Delete(ctx context.Context, id string) error
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)

	CreateApplication(ctx context.Context, application *entity.ShiftApplication) error
	FindApplication(ctx context.Context, id string) (*entity.ShiftApplication, error)
	FindApplications(ctx context.Context, shiftID string) ([]*entity.ShiftApplication, error)
	HasApplied(ctx context.Context, shiftID, applicantID string) (bool, error)
	UpdateApplication(ctx context.Context, id string, values map[string]any) (*entity.ShiftApplication, error)
	RejectOtherApplications(ctx context.Context, shiftID, acceptedID string) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) FindByID(ctx context.Context, id string) (*entity.Shift, error) {
	var shift entity.Shift
	if err := r.db.WithContext(ctx).Preload("User").First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) FindAll(ctx context.Context, filter dto.ShiftFilter) ([]*entity.Shift, int64, error) {
	var shifts []*entity.Shift
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Shift{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.DateFrom != "" {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date <= ?", filter.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Preload("User").
		Order("date asc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&shifts).Error; err != nil {
		return nil, 0, err
	}

	return shifts, total, nil
}

func (r *shiftRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.Shift, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Shift{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Shift{}, "id = ?", id).Error
}

// ExpireBefore marks open shifts whose date has passed as expired and
// returns the number of rows changed.
func (r *shiftRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Shift{}).
		Where("status = ? AND date < ?", entity.ShiftStatusOpen, cutoff).
		Update("status", entity.ShiftStatusExpired)
	return result.RowsAffected, result.Error
}

func (r *shiftRepository) CreateApplication(ctx context.Context, application *entity.ShiftApplication) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *shiftRepository) FindApplication(ctx context.Context, id string) (*entity.ShiftApplication, error) {
	var application entity.ShiftApplication
	if err := r.db.WithContext(ctx).Preload("Shift").Preload("Applicant").First(&application, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *shiftRepository) FindApplications(ctx context.Context, shiftID string) ([]*entity.ShiftApplication, error) {
	var applications []*entity.ShiftApplication
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("shift_id = ?", shiftID).
		Order("created_at asc").
		Find(&applications).Error
	return applications, err
}

func (r *shiftRepository) HasApplied(ctx context.Context, shiftID, applicantID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ShiftApplication{}).
		Where("shift_id = ? AND applicant_id = ?", shiftID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (r *shiftRepository) UpdateApplication(ctx context.Context, id string, values map[string]any) (*entity.ShiftApplication, error) {
	if err := r.db.WithContext(ctx).Model(&entity.ShiftApplication{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindApplication(ctx, id)
}

func (r *shiftRepository) RejectOtherApplications(ctx context.Context, shiftID, acceptedID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ShiftApplication{}).
		Where("shift_id = ? AND id <> ? AND status = ?", shiftID, acceptedID, entity.ApplicationStatusPending).
		Update("status", entity.ApplicationStatusRejected).Error
}
